package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerrors "gisteam.backend/internal/domain/errors"
	"gisteam.backend/internal/domain/repositories"
	"gisteam.backend/internal/interfaces/http/response"
	"gisteam.backend/internal/usecases"
	"gisteam.backend/pkg/utils"
)

// ReconcileService runs every registered reconciler.
type ReconcileService interface {
	RunAll(ctx context.Context, dryRun bool) ([]*usecases.ReconcileReport, error)
}

// AuditService produces a read-only consistency report.
type AuditService interface {
	Run(ctx context.Context) (*usecases.AuditReport, error)
}

// AdminHandler exposes maintenance operations to operators
type AdminHandler struct {
	reconciler ReconcileService
	auditor    AuditService
	messages   repositories.ContactMessageRepository
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(reconciler ReconcileService, auditor AuditService, messages repositories.ContactMessageRepository) *AdminHandler {
	return &AdminHandler{reconciler: reconciler, auditor: auditor, messages: messages}
}

// Reconcile collapses duplicate team members and accounts.
// POST /api/v1/admin/reconcile?dry_run=true
func (h *AdminHandler) Reconcile(c *gin.Context) {
	dryRun := false
	if raw := c.Query("dry_run"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("dry_run must be a boolean"))
			return
		}
		dryRun = v
	}

	reports, err := h.reconciler.RunAll(c.Request.Context(), dryRun)
	if err != nil {
		response.Error(c, err)
		return
	}

	deleted, failed, absent := 0, 0, 0
	for _, r := range reports {
		deleted += r.DeletedCount()
		failed += r.FailedCount()
		absent += r.AbsentCount()
	}
	status := http.StatusOK
	if failed > 0 {
		status = http.StatusMultiStatus
	}
	response.Success(c, status, gin.H{
		"dry_run": dryRun,
		"deleted": deleted,
		"failed":  failed,
		"absent":  absent,
		"reports": reports,
	})
}

// Audit reports malformed documents, duplicate keys and dangling creators.
// GET /api/v1/admin/audit
func (h *AdminHandler) Audit(c *gin.Context) {
	report, err := h.auditor.Run(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"clean": report.Clean(), "report": report})
}

// ListContactMessages lists submitted messages, newest first.
// GET /api/v1/admin/contact-messages?page=1&limit=20
func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	var query utils.PaginationParams
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, domainerrors.BadRequest("page and limit must be integers"))
		return
	}

	items, err := h.messages.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	page, meta := utils.Paginate(items, utils.GetPaginationParams(query.Page, query.Limit))
	response.Success(c, http.StatusOK, gin.H{"items": page, "meta": meta})
}

// GetContactMessage returns one message.
// GET /api/v1/admin/contact-messages/:id
func (h *AdminHandler) GetContactMessage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid id"))
		return
	}
	msg, err := h.messages.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg)
}
