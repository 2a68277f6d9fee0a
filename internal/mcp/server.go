package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/meltforce/planview/internal/planclient"
	"github.com/meltforce/planview/internal/planview"
)

// New creates an MCP server with all tools and resources registered.
// defaultTrainer is used by list_workout_plans when no trainer_id is given.
func New(src planclient.Source, store *planview.Store, defaultTrainer, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("planview", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Read-only access to a trainer's workout plans. List a trainer's plans, then fetch one plan to see its exercises grouped by day of week."),
	)

	h := &handlers{src: src, store: store, defaultTrainer: defaultTrainer, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkoutPlans, Handler: h.listWorkoutPlans},
		server.ServerTool{Tool: toolGetWorkoutPlan, Handler: h.getWorkoutPlan},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resSelectedPlan, Handler: h.selectedPlan},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	src            planclient.Source
	store          *planview.Store
	defaultTrainer string
	log            *slog.Logger
}

// --- Resource definitions ---

var resSelectedPlan = mcp.NewResource(
	"planview://selected",
	"Selected Workout Plan",
	mcp.WithResourceDescription("The plan most recently opened with get_workout_plan, with exercises grouped by day, or null"),
	mcp.WithMIMEType("application/json"),
)
