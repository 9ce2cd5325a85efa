// Package handler serves the VASP directory listing over HTTP.
package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"trisa-demo/relay/internal/vasp/domain"
)

// Lister is the subset of the directory repository the listing needs.
type Lister interface {
	ListVASPs(ctx context.Context) ([]*domain.VASP, error)
	ListWallets(ctx context.Context, vaspID string) ([]*domain.Wallet, error)
}

type listResponse struct {
	Data []domain.VaspDetails `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves GET /vasps.
type Handler struct {
	repo Lister
	log  logrus.FieldLogger
}

// NewHandler returns a listing handler. log may be nil.
func NewHandler(repo Lister, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{repo: repo, log: log}
}

// List writes every VASP with its wallets as {"data": [...]}.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vasps, err := h.repo.ListVASPs(ctx)
	if err != nil {
		h.fail(w, err)
		return
	}
	resp := listResponse{Data: make([]domain.VaspDetails, 0, len(vasps))}
	for _, v := range vasps {
		wallets, err := h.repo.ListWallets(ctx, v.ID)
		if err != nil {
			h.fail(w, err)
			return
		}
		resp.Data = append(resp.Data, v.Details(wallets))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.log.WithError(err).Error("list vasps")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not list vasps"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
