package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fleetwatch/sos-server/domain"
	"github.com/fleetwatch/sos-server/issuer"
	"github.com/fleetwatch/sos-server/repo/devicerepo"
	"github.com/fleetwatch/sos-server/repo/queuerepo"
)

type tokenRequest struct {
	DeviceId string `json:"device_id"`
	Uid      uint32 `json:"uid"`
	Role     string `json:"role"`
	Expire   uint32 `json:"expire"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	AppId     string `json:"app_id"`
	Channel   string `json:"channel"`
	Uid       uint32 `json:"uid"`
	ExpiresIn uint32 `json:"expires_in"`
}

func (a *api) issueToken(w http.ResponseWriter, r *http.Request, userId string) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DeviceId == "" {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}
	role := issuer.RoleSubscriber
	if req.Role == string(issuer.RolePublisher) {
		role = issuer.RolePublisher
	}
	resp, err := a.issuer.IssueToken(r.Context(), userId, issuer.TokenRequest{
		DeviceId: req.DeviceId,
		Uid:      req.Uid,
		Role:     role,
		Expire:   req.Expire,
	})
	if err != nil {
		switch {
		case errors.Is(err, devicerepo.ErrDeviceNotFound):
			writeError(w, http.StatusNotFound, "device not found")
		case errors.Is(err, issuer.ErrNotMember):
			writeError(w, http.StatusForbidden, "forbidden")
		default:
			// configuration or datastore failure, distinct from auth errors
			log.Error("issue token failed", zap.String("deviceId", req.DeviceId), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJson(w, http.StatusOK, tokenResponse{
		Token:     resp.Token,
		AppId:     resp.AppId,
		Channel:   resp.Channel,
		Uid:       resp.Uid,
		ExpiresIn: resp.ExpiresIn,
	})
}

func (a *api) tokenProbe(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"rtc_configured": a.issuer.Configured(),
	})
}

type processRequest struct {
	QueueId string             `json:"queue_id,omitempty"`
	Payload *domain.SOSPayload `json:"payload,omitempty"`
	Debug   bool               `json:"debug,omitempty"`
}

type directResponse struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Error   string `json:"error,omitempty"`
}

func (a *api) process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Payload != nil {
		sent, err := a.processor.ProcessDirect(r.Context(), *req.Payload)
		resp := directResponse{Success: err == nil, Sent: sent}
		if err != nil {
			resp.Error = err.Error()
		}
		writeJson(w, http.StatusOK, resp)
		return
	}
	res, err := a.processor.ProcessQueue(r.Context(), req.QueueId, req.Debug)
	if err != nil {
		if errors.Is(err, queuerepo.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "queue item not found")
			return
		}
		log.Error("queue processing failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJson(w, http.StatusOK, res)
}

func (a *api) processProbe(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (a *api) trigger(w http.ResponseWriter, r *http.Request) {
	var payload domain.SOSPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.DeviceId == "" || payload.GroupId == "" {
		writeError(w, http.StatusBadRequest, "device_id and group_id are required")
		return
	}
	item, err := a.queueRepo.Enqueue(r.Context(), payload)
	if err != nil {
		log.Error("enqueue failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	// best effort: the pending sweep picks the item up even if the nudge is
	// lost
	if err = a.queue.Add(r.Context(), item.Id); err != nil {
		log.Warn("queue nudge failed", zap.String("itemId", item.Id), zap.Error(err))
	}
	writeJson(w, http.StatusAccepted, map[string]any{"queued": true, "id": item.Id})
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJson(w, status, map[string]string{"error": msg})
}
