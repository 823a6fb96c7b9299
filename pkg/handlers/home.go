package handlers

import (
	"net/http"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/models"
)

const welcomeMessage = "Welcome to the Text-to-Cypher API. POST a question to /generate-cypher/ to get a Cypher query and its results."

func Home(cfg *cyphergen.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, cfg.Logger, http.StatusOK, &models.WelcomeResponse{Message: welcomeMessage})
	}
}
