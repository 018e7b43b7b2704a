package controller

import (
	"matchday/app_error"
	"matchday/client"
	"matchday/repository"
	"matchday/service"
	"matchday/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MoveRequestController struct {
	rescheduleService *service.RescheduleService
}

func NewMoveRequestController(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) *MoveRequestController {
	return &MoveRequestController{
		rescheduleService: service.NewRescheduleService(db, publisher, logger),
	}
}

func setupMoveRequestController(db *gorm.DB, publisher client.EventPublisher, logger *logrus.Logger) []RouteInfo {
	e := NewMoveRequestController(db, publisher, logger)
	authority := []repository.Role{repository.RoleAdmin, repository.RoleTournamentAdmin}
	return []RouteInfo{
		{Method: "GET", Path: "matches/:match_id/move-request", HandlerFunc: e.getLatestHandler(), Authenticated: true},
		{Method: "POST", Path: "matches/:match_id/move-request", HandlerFunc: e.createHandler(), Authenticated: true},
		{Method: "POST", Path: "matches/:match_id/move-request/accept", HandlerFunc: e.acceptHandler(), Authenticated: true},
		{Method: "POST", Path: "matches/:match_id/move-request/reject", HandlerFunc: e.rejectHandler(), Authenticated: true},
		{Method: "GET", Path: "move-requests/pending", HandlerFunc: e.getPendingHandler(), Authenticated: true, RequiredRoles: authority},
		{Method: "POST", Path: "move-requests/:request_id/decide", HandlerFunc: e.decideHandler(), Authenticated: true, RequiredRoles: authority},
	}
}

// @id GetLatestMoveRequest
// @Description Fetches the latest move request of a match and what the caller may do with it
// @Tags move-request
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} MoveRequestView
// @Router /matches/{match_id}/move-request [get]
func (e *MoveRequestController) getLatestHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		view, err := e.rescheduleService.GetLatest(user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMoveRequestViewResponse(view))
	}
}

// @id CreateMoveRequest
// @Description Proposes a new date and/or time for a match on behalf of the home team
// @Tags move-request
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match Id"
// @Param body body MoveRequestCreate true "Proposal"
// @Success 201 {object} MoveRequest
// @Router /matches/{match_id}/move-request [post]
func (e *MoveRequestController) createHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		var body MoveRequestCreate
		if !bindBody(c, &body) {
			return
		}
		request, err := e.rescheduleService.Create(c.Request.Context(), user, matchId, service.MoveRequestInput{
			Date: body.Date,
			Time: body.Time,
			Note: body.Note,
		})
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(201, toMoveRequestResponse(request))
	}
}

// @id AcceptMoveRequest
// @Description Away team accepts the pending move request
// @Tags move-request
// @Security BearerAuth
// @Produce json
// @Param match_id path int true "Match Id"
// @Success 200 {object} MoveRequest
// @Router /matches/{match_id}/move-request/accept [post]
func (e *MoveRequestController) acceptHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		request, err := e.rescheduleService.Accept(c.Request.Context(), user, matchId)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMoveRequestResponse(request))
	}
}

// @id RejectMoveRequest
// @Description Away team rejects the pending move request
// @Tags move-request
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param match_id path int true "Match Id"
// @Param body body MoveRequestReject false "Reason"
// @Success 200 {object} MoveRequest
// @Router /matches/{match_id}/move-request/reject [post]
func (e *MoveRequestController) rejectHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, matchId, ok := getUserAndMatchId(c)
		if !ok {
			return
		}
		var body MoveRequestReject
		if c.Request.ContentLength != 0 && !bindBody(c, &body) {
			return
		}
		request, err := e.rescheduleService.Reject(c.Request.Context(), user, matchId, body.Reason)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMoveRequestResponse(request))
	}
}

// @id GetPendingMoveRequests
// @Description Lists move requests awaiting the tournament authority, oldest first
// @Tags move-request
// @Security BearerAuth
// @Produce json
// @Success 200 {array} PendingMoveRequest
// @Router /move-requests/pending [get]
func (e *MoveRequestController) getPendingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		if user == nil {
			return
		}
		pending, err := e.rescheduleService.ListPending(user)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, utils.Map(pending, toPendingMoveRequestResponse))
	}
}

// @id DecideMoveRequest
// @Description Tournament authority approves or rejects a move request
// @Tags move-request
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request_id path string true "Move request Id"
// @Param body body MoveRequestDecision true "Decision"
// @Success 200 {object} MoveRequest
// @Router /move-requests/{request_id}/decide [post]
func (e *MoveRequestController) decideHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := getUser(c)
		if user == nil {
			return
		}
		var body MoveRequestDecision
		if !bindBody(c, &body) {
			return
		}
		request, err := e.rescheduleService.Decide(c.Request.Context(), user, c.Param("request_id"), body.Decision, body.Reason)
		if err != nil {
			app_error.Respond(c, err)
			return
		}
		c.JSON(200, toMoveRequestResponse(request))
	}
}

type MoveRequestCreate struct {
	Date string `json:"date"`
	Time string `json:"time"`
	Note string `json:"note" binding:"max=1000"`
}

type MoveRequestReject struct {
	Reason string `json:"reason" binding:"max=1000"`
}

type MoveRequestDecision struct {
	Decision string `json:"decision" binding:"required"`
	Reason   string `json:"reason" binding:"max=1000"`
}
