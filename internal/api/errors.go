// Cinebot - Voice-Driven Movie Discovery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinebot

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/cinebot/internal/dispatch"
	"github.com/tomtom215/cinebot/internal/gateway"
	"github.com/tomtom215/cinebot/internal/logging"
	"github.com/tomtom215/cinebot/internal/validation"
)

// turnStatus maps a turn error code onto an HTTP status.
func turnStatus(code string) int {
	switch code {
	case dispatch.CodeInvalidTransition:
		return http.StatusConflict
	case dispatch.CodeMissingSelector, dispatch.CodeAmbiguousSelector:
		return http.StatusUnprocessableEntity
	case dispatch.CodeValidation:
		return http.StatusBadRequest
	case dispatch.CodeNotFound, dispatch.CodeUnknownAction:
		return http.StatusNotFound
	case dispatch.CodeSessionClosed:
		return http.StatusGone
	case dispatch.CodeTimeout, "GATEWAY_" + strings.ToUpper(string(gateway.ReasonTimeout)):
		return http.StatusGatewayTimeout
	}
	if strings.HasPrefix(code, "GATEWAY_") {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// TurnError writes a failed turn. The message is what the assistant should
// say; the code is the error taxonomy.
func (rw *ResponseWriter) TurnError(err error) {
	code := dispatch.ErrorCode(err)
	status := turnStatus(code)

	var details interface{}
	var ve *validation.RequestValidationError
	if errors.As(err, &ve) {
		details = ve.ToAPIError().Details
	}

	event := logging.Ctx(rw.r.Context()).Info()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(rw.r.Context()).Warn()
	}
	event.Err(err).Str("code", code).Msg("Turn failed")

	rw.ErrorWithDetails(status, code, dispatch.Reply(err), details)
}
