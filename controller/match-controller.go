package controller

import (
	"fmt"
	"strings"

	"matchday/app_error"
	"matchday/client"
	"matchday/repository"
	"matchday/service"
	"matchday/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MatchController struct {
	lineupApprovalService  *service.LineupApprovalService
	refereeApprovalService *service.RefereeApprovalService
	matchLifecycleService  *service.MatchLifecycleService
	reserveService         *service.ReserveService
	matchDataService       *service.MatchDataService
}

func NewMatchController(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *MatchController {
	return &MatchController{
		lineupApprovalService:  service.NewLineupApprovalService(db, publisher, logger),
		refereeApprovalService: service.NewRefereeApprovalService(db, publisher, logger),
		matchLifecycleService:  service.NewMatchLifecycleService(db, publisher, logger),
		reserveService:         service.NewReserveService(db, publisher, logger),
		matchDataService:       service.NewMatchDataService(db, publisher, logger),
	}
}

func setupMatchController(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) []RouteInfo {
	e := NewMatchController(db, publisher, logger)
	baseUrl := "matches/:match_id"
	routes := []RouteInfo{
		{Method: "GET", Path: "", HandlerFunc: e.getMatchHandler(), Authenticated: true},
		{Method: "GET", Path: "/status", HandlerFunc: e.getStatusHandler(), Authenticated: true},
		{Method: "GET", Path: "/lineup-approvals", HandlerFunc: e.getLineupApprovalsHandler(), Authenticated: true},
		{Method: "POST", Path: "/lineup-approvals", HandlerFunc: e.approveLineupHandler(), Authenticated: true},
		{Method: "GET", Path: "/lineup-approvals/:venue/signature", HandlerFunc: e.getSignatureHandler(), Authenticated: true},
		{Method: "POST", Path: "/referee-approvals", HandlerFunc: e.approveRefereeHandler(), Authenticated: true},
		{Method: "POST", Path: "/start", HandlerFunc: e.startMatchHandler(), Authenticated: true},
		{Method: "POST", Path: "/close", HandlerFunc: e.closeMatchHandler(), Authenticated: true},
		{Method: "POST", Path: "/reserves", HandlerFunc: e.setReservesHandler(), Authenticated: true},
		{Method: "POST", Path: "/delete", HandlerFunc: e.deleteMatchDataHandler(), Authenticated: true},
	}
	for i, route := range routes {
		routes[i].Path = baseUrl + route.Path
	}
	return routes
}

// @id GetMatch
// @Description Fetches the fixture of a match together with its derived status
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} Match
// @Router /matches/{match_id} [get]
func (e *MatchController) getMatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		overview, err := e.matchDataService.GetMatch(user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMatchResponse(overview.Match, overview.Status))
	}
}

// @id GetMatchStatus
// @Description Derives the status of a match from its match day rows
// @Tags match
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} MatchStatusResponse
// @Router /matches/{match_id}/status [get]
func (e *MatchController) getStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		status, err := e.matchDataService.GetStatus(user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, MatchStatusResponse{MatchId: matchId, Status: string(status)})
	}
}

// @id GetLineupApprovals
// @Description Lists the signed lineups of a match and whether it has been started
// @Tags approval
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} ApprovalOverview
// @Router /matches/{match_id}/lineup-approvals [get]
func (e *MatchController) getLineupApprovalsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		overview, err := e.lineupApprovalService.Overview(user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toApprovalOverviewResponse(overview))
	}
}

// @id ApproveLineup
// @Description Signs the lineup of one venue
// @Tags approval
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match Id"
// @Param body body LineupApprovalRequest true "Approval"
// @Success 200 {object} LineupApproval
// @Router /matches/{match_id}/lineup-approvals [post]
func (e *MatchController) approveLineupHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		var body LineupApprovalRequest
		if !bindBody(c, &body) {
			return
		}
		approval, err := e.lineupApprovalService.Approve(c.Request.Context(), user, matchId, service.LineupApprovalInput{
			Venue:      body.Venue,
			LeaderName: body.LeaderName,
			Signature:  body.Signature,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toLineupApprovalResponse(approval))
	}
}

// @id GetLineupSignature
// @Description Returns the stored signature of a venue as PNG
// @Tags approval
// @Security BearerAuth
// @Produce png
// @Param match_id path int true "Match Id"
// @Param venue path string true "Hjemme or Ude"
// @Param download query string false "1 to download as attachment"
// @Success 200 {file} binary
// @Router /matches/{match_id}/lineup-approvals/{venue}/signature [get]
func (e *MatchController) getSignatureHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		png, err := e.lineupApprovalService.Signature(user, matchId, c.Param("venue"))
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.Header("Cache-Control", "private, no-store")
		if c.Query("download") == "1" {
			venue, _ := repository.ParseVenue(c.Param("venue"))
			c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="signature-%d-%s.png"`, matchId, strings.ToLower(string(venue))))
		}
		c.Data(200, "image/png", png)
	}
}

// @id ApproveReferee
// @Description Signs the match report for one referee seat
// @Tags approval
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match Id"
// @Param body body RefereeApprovalRequest true "Approval"
// @Success 200 {object} RefereeApproval
// @Router /matches/{match_id}/referee-approvals [post]
func (e *MatchController) approveRefereeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		var body RefereeApprovalRequest
		if !bindBody(c, &body) {
			return
		}
		approval, err := e.refereeApprovalService.Approve(c.Request.Context(), user, matchId, service.RefereeApprovalInput{
			RefIndex:  body.RefIndex,
			Name:      body.Name,
			RefereeNo: body.RefereeNo,
			Signature: body.Signature,
			NoRef2:    body.NoRef2,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toRefereeApprovalResponse(approval))
	}
}

// @id StartMatch
// @Description Starts a match once both lineups are signed
// @Tags lifecycle
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} MatchStart
// @Router /matches/{match_id}/start [post]
func (e *MatchController) startMatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		start, err := e.matchLifecycleService.Start(c.Request.Context(), user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMatchStartResponse(start))
	}
}

// @id CloseMatch
// @Description Closes a started match once the referees have signed
// @Tags lifecycle
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} MatchStatusResponse
// @Router /matches/{match_id}/close [post]
func (e *MatchController) closeMatchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		status, err := e.matchLifecycleService.Close(c.Request.Context(), user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, MatchStatusResponse{MatchId: matchId, Status: string(status)})
	}
}

// @id SetReserves
// @Description Replaces the reserve marks of one venue's lineup
// @Tags lineup
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match Id"
// @Param body body ReservesRequest true "Reserve jersey numbers"
// @Success 200 {array} LineupRow
// @Router /matches/{match_id}/reserves [post]
func (e *MatchController) setReservesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		var body ReservesRequest
		if !bindBody(c, &body) {
			return
		}
		rows, err := e.reserveService.SetReserves(c.Request.Context(), user, matchId, body.Venue, body.Numbers)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(rows, toLineupRowResponse))
	}
}

// @id DeleteMatchData
// @Description Erases all match day data of a match. The fixture is kept.
// @Tags lifecycle
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match Id"
// @Param body body DeleteMatchDataRequest true "Confirmation"
// @Success 200 {object} DeletedCounts
// @Router /matches/{match_id}/delete [post]
func (e *MatchController) deleteMatchDataHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		var body DeleteMatchDataRequest
		if !bindBody(c, &body) {
			return
		}
		counts, err := e.matchDataService.DeleteMatchData(c.Request.Context(), user, matchId, body.Confirm)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, DeletedCounts{MatchId: matchId, Deleted: counts})
	}
}

type MatchStatusResponse struct {
	MatchId int    `json:"match_id"`
	Status  string `json:"status"`
}

type LineupApprovalRequest struct {
	Venue      string `json:"venue"`
	LeaderName string `json:"leader_name"`
	Signature  string `json:"signature"`
}

type RefereeApprovalRequest struct {
	RefIndex  int    `json:"ref_index"`
	Name      string `json:"name"`
	RefereeNo string `json:"referee_no"`
	Signature string `json:"signature"`
	NoRef2    bool   `json:"no_ref2"`
}

type ReservesRequest struct {
	Venue   string   `json:"venue"`
	Numbers []string `json:"numbers" binding:"max=200,dive,max=10"`
}

type DeleteMatchDataRequest struct {
	Confirm string `json:"confirm"`
}
