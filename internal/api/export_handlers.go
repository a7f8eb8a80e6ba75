package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"gohoras/internal/errors"
	"gohoras/models"
)

var exportHeaders = []string{"Member", "Total Hours", "Percentage", "Consistency", "Entries"}

// exportContestStats streams the contest statistics as an xlsx attachment
func (s *Server) exportContestStats(c *gin.Context) {
	contestID, ok := parseID(c, "contestId", "contest")
	if !ok {
		return
	}
	stats, err := s.stats.ContestStats(c.Request.Context(), contestID)
	if err != nil {
		writeError(c, err)
		return
	}

	f, err := buildStatsWorkbook(stats)
	if err != nil {
		writeError(c, errors.Wrap(err, "failed to build workbook"))
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("stats-%s.xlsx", contestID)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		s.log.Error("failed to stream stats export: %v", err)
		return
	}
	c.Status(http.StatusOK)
}

func buildStatsWorkbook(stats *models.ContestStats) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for r, member := range stats.Stats {
		row := []interface{}{
			member.User.Username,
			member.TotalHours,
			member.Percentage,
			member.Consistency,
			member.EntriesCount,
		}
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, r+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// summary block below the table
	summaryRow := len(stats.Stats) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellValue(sheet, cell, "Weekly expected hours"); err != nil {
		return nil, err
	}
	cell, _ = excelize.CoordinatesToCellName(2, summaryRow)
	if err := f.SetCellValue(sheet, cell, stats.WeeklyExpectedHours); err != nil {
		return nil, err
	}

	return f, nil
}
