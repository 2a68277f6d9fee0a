package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/planview/internal/models"
	"github.com/meltforce/planview/internal/planclient"
)

// --- Tool definitions ---

var toolListWorkoutPlans = mcp.NewTool("list_workout_plans",
	mcp.WithDescription("List a trainer's workout plans in backend order. Returns id, name, description, fromDate and toDate for each plan."),
	mcp.WithString("trainer_id", mcp.Description("Trainer id. Defaults to the configured trainer.")),
)

var toolGetWorkoutPlan = mcp.NewTool("get_workout_plan",
	mcp.WithDescription("Fetch one workout plan. Returns the plan summary plus 'days': exercises grouped by day of week, each entry with exerciseOrder and name."),
	mcp.WithString("plan_id", mcp.Required(), mcp.Description("Workout plan id as returned by list_workout_plans")),
)

// --- Tool handlers ---

func (h *handlers) listWorkoutPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trainerID := req.GetString("trainer_id", h.defaultTrainer)
	if trainerID == "" {
		return mcp.NewToolResultError("trainer_id parameter is required (no default trainer configured)"), nil
	}

	plans, err := h.src.ListWorkoutPlans(ctx, trainerID)
	if err != nil {
		h.log.Error("mcp list_workout_plans", "trainer_id", trainerID, "kind", planclient.Kind(err), "error", err)
		return mcp.NewToolResultError("fetching workout plans failed: " + err.Error()), nil
	}
	if plans == nil {
		plans = []models.WorkoutSummary{}
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"trainer_id": trainerID,
		"plans":      plans,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	planID, err := req.RequireString("plan_id")
	if err != nil || planID == "" {
		return mcp.NewToolResultError("plan_id parameter is required"), nil
	}

	if err := h.store.SelectPlan(ctx, planID); err != nil {
		return mcp.NewToolResultError("fetching workout plan failed: " + err.Error()), nil
	}

	st := h.store.State()
	if st.Selected == nil || st.Selected.ID.String() != planID {
		return mcp.NewToolResultError("workout plan " + planID + " was superseded by a newer request"), nil
	}

	result, err := mcp.NewToolResultJSON(models.NewDetailView(st.Selected.WorkoutSummary, st.Grouped))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
