package activity

import (
	"strconv"
	"time"

	"autocenter_backend/internal/events"
	apphttp "autocenter_backend/internal/http"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	repo *Repository
}

// NewModule wires the activity module and subscribes its recorder to the
// event bus.
func NewModule(pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) *Module {
	repo := NewRepository(pool)
	NewRecorder(repo, log).Subscribe(bus)
	return &Module{repo: repo}
}

func (m *Module) Name() string {
	return "activity"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.GET("/activity", m.listRecent)
}

type entryResponse struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func (m *Module) listRecent(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := m.repo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]entryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entryResponse{
			ID:          entry.ID.String(),
			Type:        entry.Type,
			Description: entry.Description,
			Metadata:    entry.Metadata,
			CreatedAt:   entry.CreatedAt,
		})
	}
	httpkit.OK(c, out)
}

var _ apphttp.Module = (*Module)(nil)
