package httpapi

import (
	"encoding/json"
	"net/http"

	"marketer/internal/domain"
)

func (a *API) handleSchedulePost(w http.ResponseWriter, r *http.Request) {
	var req domain.SchedulePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.Validation("invalid json"))
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, err)
		return
	}

	post := a.Posts.Add(domain.ScheduledPost{
		Content:       req.Content,
		Platforms:     req.Platforms,
		ScheduledTime: req.ScheduledTime,
		ImageURL:      req.ImageURL,
		Status:        "scheduled",
		CreatedAt:     a.now(),
	})
	respondOK(w, map[string]any{"post": post})
}

func (a *API) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts := a.Posts.List()
	respondOK(w, map[string]any{"posts": posts, "total": len(posts)})
}
