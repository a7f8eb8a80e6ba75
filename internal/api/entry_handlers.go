package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gohoras/app"
	"gohoras/internal/errors"
)

// clockIn opens a session: POST /api/timeentries/entry with a contestId
// form field and an optional entryPhoto file.
func (s *Server) clockIn(c *gin.Context) {
	contestID, err := uuid.Parse(c.PostForm("contestId"))
	if err != nil {
		writeError(c, errors.ValidationError("invalid contest id"))
		return
	}

	entryPhoto := ""
	if fh, ferr := c.FormFile("entryPhoto"); ferr == nil {
		entryPhoto, err = s.uploads.SavePhoto(fh)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	entry, err := s.tracker.ClockIn(c.Request.Context(), currentUser(c).ID, contestID, entryPhoto)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// clockOut closes a session: PUT /api/timeentries/exit/:id with an
// activityCount field, optional activityDescriptions (JSON array) and
// optional activityPhotos files. The count drives how many activities are
// created; missing descriptions and photos get defaults.
func (s *Server) clockOut(c *gin.Context) {
	entryID, ok := parseID(c, "id", "entry")
	if !ok {
		return
	}

	activityCount, _ := strconv.Atoi(c.PostForm("activityCount"))
	if activityCount < 0 || activityCount > s.cfg.Uploads.MaxPhotos {
		writeError(c, errors.ValidationError("invalid activity count"))
		return
	}

	descriptions := parseDescriptions(c.PostForm("activityDescriptions"))

	var photoPaths []string
	if form, err := c.MultipartForm(); err == nil {
		files := form.File["activityPhotos"]
		if len(files) > s.cfg.Uploads.MaxPhotos {
			writeError(c, errors.ValidationError("too many photos"))
			return
		}
		photoPaths, err = s.uploads.SavePhotos(files)
		if err != nil {
			writeError(c, err)
			return
		}
	}

	entry, err := s.tracker.ClockOut(c.Request.Context(), currentUser(c).ID, entryID, app.ClockOutRequest{
		ActivityCount: activityCount,
		Descriptions:  descriptions,
		PhotoPaths:    photoPaths,
		ExitPhoto:     c.PostForm("exitPhoto"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// parseDescriptions accepts either a JSON array of strings or a single
// bare string
func parseDescriptions(raw string) []string {
	if raw == "" {
		return nil
	}
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		return parsed
	}
	return []string{raw}
}

// listContestEntries returns every entry for a contest (members and admins)
func (s *Server) listContestEntries(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", "contest")
	if !ok {
		return
	}
	entries, err := s.tracker.ContestEntries(c.Request.Context(), currentUser(c), contestID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// listMyEntries returns the caller's own entries for a contest
func (s *Server) listMyEntries(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", "contest")
	if !ok {
		return
	}
	entries, err := s.tracker.MyEntries(c.Request.Context(), currentUser(c).ID, contestID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// getOpenEntry returns the caller's open session for a contest, or null
func (s *Server) getOpenEntry(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", "contest")
	if !ok {
		return
	}
	entry, err := s.tracker.OpenEntry(c.Request.Context(), currentUser(c).ID, contestID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// getContestStats returns the statistics payload for a contest
func (s *Server) getContestStats(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", "contest")
	if !ok {
		return
	}
	stats, err := s.stats.ContestStats(c.Request.Context(), contestID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// getDailyAttendance returns all entries whose date falls on the given
// calendar day, entry time ascending
func (s *Server) getDailyAttendance(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", "contest")
	if !ok {
		return
	}
	day, err := time.ParseInLocation("2006-01-02", c.Param("date"), time.Local)
	if err != nil {
		writeError(c, errors.ValidationError("invalid date, expected YYYY-MM-DD"))
		return
	}

	entries, err := s.tracker.DailyAttendance(c.Request.Context(), contestID, day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
