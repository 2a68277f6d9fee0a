package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/meltforce/planview/internal/models"
)

func (h *handlers) selectedPlan(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	st := h.store.State()

	var data []byte
	var err error
	if st.OverlayOpen {
		data, err = json.Marshal(models.NewDetailView(st.Selected.WorkoutSummary, st.Grouped))
	} else {
		data = []byte("null")
	}
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
