package newsletter

import (
	"net/http"
	"time"

	"autocenter_backend/internal/email"
	"autocenter_backend/internal/events"
	apphttp "autocenter_backend/internal/http"
	"autocenter_backend/platform/httpkit"
	"autocenter_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Module struct {
	service *Service
}

func NewModule(pool *pgxpool.Pool, bus events.Bus, mail email.Sender, log *logger.Logger) *Module {
	return &Module{service: NewService(NewRepository(pool), bus, mail, log)}
}

func (m *Module) Name() string {
	return "newsletter"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Public.POST("/newsletter", m.subscribe)
	ctx.Admin.GET("/newsletter/subscribers", m.listSubscribers)
}

type subscribeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type subscriberResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

func (m *Module) subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "Virheelliset tiedot", nil)
		return
	}

	sub, err := m.service.Subscribe(c.Request.Context(), req.Email, req.Name)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OKMessage(c, toSubscriberResponse(sub), "Kiitos tilauksesta!")
}

func (m *Module) listSubscribers(c *gin.Context) {
	subs, err := m.service.ListSubscribers(c.Request.Context())
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	out := make([]subscriberResponse, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toSubscriberResponse(sub))
	}
	httpkit.OK(c, out)
}

func toSubscriberResponse(sub Subscriber) subscriberResponse {
	resp := subscriberResponse{
		ID:           sub.ID.String(),
		Email:        sub.Email,
		SubscribedAt: sub.SubscribedAt,
	}
	if sub.Name != nil {
		resp.Name = *sub.Name
	}
	return resp
}

var _ apphttp.Module = (*Module)(nil)
