package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	emailRepo "orgflow/database/repository/email"
	"orgflow/services/approval"
	"orgflow/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EmailActionHandler executes one-click approve/reject links. The endpoint is
// unauthenticated: possession of an unused, unexpired token is the credential.
type EmailActionHandler struct {
	Tokens emailRepo.TokenRepository
	// Actioners maps a record type to the service that owns its transitions.
	Actioners map[string]approval.EmailActioner
}

func NewEmailActionHandler(tokens emailRepo.TokenRepository, actioners map[string]approval.EmailActioner) *EmailActionHandler {
	return &EmailActionHandler{Tokens: tokens, Actioners: actioners}
}

// ExecuteHandler handles GET /api/email-actions/execute/:token. It responds
// with a small HTML page because the link is opened from a mail client.
func (h *EmailActionHandler) ExecuteHandler(c *gin.Context) {
	logger := utils.GetLogger()
	raw := c.Param("token")

	token, err := h.Tokens.Consume(c.Request.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, emailRepo.ErrTokenUsed):
			renderActionPage(c, http.StatusGone, "Link already used",
				"This approval link has already been used. Each link works exactly once.")
		case errors.Is(err, mongo.ErrNoDocuments):
			renderActionPage(c, http.StatusNotFound, "Invalid link",
				"This approval link is not recognised.")
		default:
			logger.Error("Token consumption failed", zap.Error(err))
			renderActionPage(c, http.StatusInternalServerError, "Something went wrong",
				"We could not process this link. Please try again later.")
		}
		return
	}

	if time.Now().After(token.ExpiresAt) {
		renderActionPage(c, http.StatusGone, "Link expired",
			"This approval link has expired. Please action the request from your dashboard.")
		return
	}

	actioner, ok := h.Actioners[token.RecordType]
	if !ok {
		logger.Error("No actioner registered for record type", zap.String("recordType", token.RecordType))
		renderActionPage(c, http.StatusBadRequest, "Unsupported request type",
			"This request type can no longer be actioned by email.")
		return
	}

	if err := actioner.ExecuteEmailAction(c.Request.Context(), token.RecordID, token.Action, token.RecipientEmail); err != nil {
		logger.Warn("Email action rejected",
			zap.String("recordType", token.RecordType),
			zap.String("recordId", token.RecordID),
			zap.String("action", token.Action),
			zap.Error(err))
		status := decisionStatus(err)
		if status == http.StatusConflict {
			renderActionPage(c, status, "Already decided",
				"This request has already been approved or rejected.")
			return
		}
		if status == http.StatusForbidden {
			renderActionPage(c, status, "Not allowed",
				"You are not permitted to action this request.")
			return
		}
		renderActionPage(c, status, "Something went wrong",
			"We could not complete the action. Please try again from your dashboard.")
		return
	}

	verb := "approved"
	if token.Action == "reject" {
		verb = "rejected"
	}
	renderActionPage(c, http.StatusOK, "Done",
		fmt.Sprintf("The request has been %s. You can close this tab.", verb))
}

func renderActionPage(c *gin.Context, status int, title, message string) {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>%s</title></head>
<body style="font-family:Arial,sans-serif;max-width:480px;margin:80px auto;text-align:center;">
<h2>%s</h2>
<p style="color:#555;">%s</p>
</body>
</html>`, title, title, message)
	c.Data(status, "text/html; charset=utf-8", []byte(page))
}
