package health

import (
	"encoding/json"
	"net/http"
)

// Response is the liveness payload.
type Response struct {
	Status string `json:"status"`
}

// Handler answers liveness probes. It lives at the unversioned root so load
// balancers and deploy tooling can hit it without a token or an API prefix.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Status: "healthy"})
}
