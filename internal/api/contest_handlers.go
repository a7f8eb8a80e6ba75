package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
	"github.com/google/uuid"

	"gohoras/internal/errors"
	"gohoras/models"
)

type contestRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	TotalHours  *float64   `json:"totalHours"`
	Active      *bool      `json:"active"`
}

// contestResponse decorates a contest with its description rendered to HTML
type contestResponse struct {
	*models.Contest
	DescriptionHTML string `json:"descriptionHtml"`
}

func renderContest(contest *models.Contest) contestResponse {
	html := ""
	if contest.Description != "" {
		html = string(markdown.ToHTML([]byte(contest.Description), nil, nil))
	}
	return contestResponse{Contest: contest, DescriptionHTML: html}
}

func parseID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		writeError(c, errors.ValidationError("invalid "+what+" id"))
		return uuid.Nil, false
	}
	return id, true
}

// createContest creates a new contest (admin only)
func (s *Server) createContest(c *gin.Context) {
	var req contestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}

	contest := &models.Contest{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		TotalHours:  100,
		Active:      true,
		CreatedBy:   currentUser(c).ID,
		Members:     []models.Member{},
	}
	if req.StartDate != nil {
		contest.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		contest.EndDate = *req.EndDate
	}
	if req.TotalHours != nil {
		contest.TotalHours = *req.TotalHours
	}
	if err := contest.Validate(); err != nil {
		writeError(c, err)
		return
	}

	if err := s.contests.Create(c.Request.Context(), contest); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contest)
}

// listContests returns all active contests
func (s *Server) listContests(c *gin.Context) {
	contests, err := s.contests.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

// listMyContests returns the active contests the caller belongs to
func (s *Server) listMyContests(c *gin.Context) {
	contests, err := s.contests.ListForMember(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contests)
}

// getContest returns one contest with its roster and rendered description
func (s *Server) getContest(c *gin.Context) {
	id, ok := parseID(c, "id", "contest")
	if !ok {
		return
	}
	contest, err := s.contests.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, renderContest(contest))
}

// updateContest applies partial field changes (admin only)
func (s *Server) updateContest(c *gin.Context) {
	id, ok := parseID(c, "id", "contest")
	if !ok {
		return
	}
	contest, err := s.contests.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	var req contestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}
	if req.Name != "" {
		contest.Name = req.Name
	}
	if req.Description != "" {
		contest.Description = req.Description
	}
	if req.StartDate != nil {
		contest.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		contest.EndDate = *req.EndDate
	}
	if req.TotalHours != nil {
		contest.TotalHours = *req.TotalHours
	}
	if req.Active != nil {
		contest.Active = *req.Active
	}
	if err := contest.Validate(); err != nil {
		writeError(c, err)
		return
	}

	if err := s.contests.Update(c.Request.Context(), contest); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// deleteContest removes a contest (admin only)
func (s *Server) deleteContest(c *gin.Context) {
	id, ok := parseID(c, "id", "contest")
	if !ok {
		return
	}
	if err := s.contests.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contest deleted"})
}

// addContestMember puts a user on the roster (admin only)
func (s *Server) addContestMember(c *gin.Context) {
	id, ok := parseID(c, "id", "contest")
	if !ok {
		return
	}

	var req struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, errors.ValidationError("invalid request body"))
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(c, errors.ValidationError("invalid user id"))
		return
	}

	// both sides must exist before touching the roster
	if _, err := s.contests.GetByID(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	if _, err := s.users.GetByID(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}

	if err := s.contests.AddMember(c.Request.Context(), id, userID); err != nil {
		writeError(c, err)
		return
	}

	contest, err := s.contests.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contest)
}

// removeContestMember drops a user from the roster (admin only). Their
// time entries stay in storage untouched.
func (s *Server) removeContestMember(c *gin.Context) {
	id, ok := parseID(c, "id", "contest")
	if !ok {
		return
	}
	userID, ok := parseID(c, "userId", "user")
	if !ok {
		return
	}

	if _, err := s.contests.GetByID(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	if err := s.contests.RemoveMember(c.Request.Context(), id, userID); err != nil {
		writeError(c, err)
		return
	}

	contest, err := s.contests.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contest)
}
