package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/generator"
	"github.com/genegraph/cyphergen/pkg/models"
)

// Query answers a natural-language question with the generated Cypher query
// and the rows it returned.
func Query(cfg *cyphergen.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var request models.QueryRequest

		err := json.NewDecoder(r.Body).Decode(&request)
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = errors.New("request body is empty")
			}
			l := fmt.Sprintf("Unable to decode request body: %s", err)
			cfg.Logger.Debug(l)
			writeJSON(w, cfg.Logger, http.StatusBadRequest, &models.ErrorResponse{Error: l})
			return
		}

		response, err := cfg.Asker.Ask(r.Context(), request.Question)
		if err != nil {
			writeJSON(w, cfg.Logger, statusFor(err), errorResponse(err))
			return
		}

		writeJSON(w, cfg.Logger, http.StatusOK, response)
	}
}

func statusFor(err error) int {
	kind, _ := generator.KindOf(err)
	switch kind {
	case generator.KindExtraction:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func errorResponse(err error) *models.ErrorResponse {
	resp := &models.ErrorResponse{Error: err.Error()}

	var e *generator.Error
	if errors.As(err, &e) {
		resp.Kind = string(e.Kind)
		resp.Query = e.Query
	}
	return resp
}
