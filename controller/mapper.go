package controller

import (
	"time"

	"matchday/repository"
	"matchday/service"
	"matchday/utils"
)

type LineupApproval struct {
	MatchId      int              `json:"match_id"`
	Venue        repository.Venue `json:"venue"`
	LeaderName   string           `json:"leader_name"`
	ApprovedById string           `json:"approved_by_id"`
	ApprovedAt   time.Time        `json:"approved_at"`
}

type RefereeApproval struct {
	MatchId    int       `json:"match_id"`
	RefIndex   int       `json:"ref_index"`
	Name       string    `json:"name"`
	RefereeNo  string    `json:"referee_no"`
	NoRef2     bool      `json:"no_ref2"`
	ApprovedAt time.Time `json:"approved_at"`
}

type MatchStart struct {
	MatchId     int       `json:"match_id"`
	StartedAt   time.Time `json:"started_at"`
	StartedById string    `json:"started_by_id"`
}

type ApprovalOverview struct {
	Approvals  []*LineupApproval `json:"approvals"`
	HomeSigned bool              `json:"home_signed"`
	AwaySigned bool              `json:"away_signed"`
	MatchStart *MatchStart       `json:"match_start"`
}

type LineupRow struct {
	RowIndex int     `json:"row_index"`
	Number   *string `json:"number"`
	Name     *string `json:"name"`
	Leader   bool    `json:"leader"`
	Reserve  bool    `json:"reserve"`
	Status   *string `json:"status"`
}

type Match struct {
	MatchId      int                    `json:"match_id"`
	Date         *string                `json:"date"`
	Time         *string                `json:"time"`
	League       string                 `json:"league"`
	Pool         string                 `json:"pool"`
	VenueKey     string                 `json:"venue_key"`
	HomeTeam     string                 `json:"home_team"`
	AwayTeam     string                 `json:"away_team"`
	HomeHoldId   *string                `json:"home_hold_id"`
	AwayHoldId   *string                `json:"away_hold_id"`
	Referee1Name *string                `json:"referee1_name"`
	Referee1Id   *string                `json:"referee1_id"`
	Referee2Name *string                `json:"referee2_name"`
	Referee2Id   *string                `json:"referee2_id"`
	Status       repository.MatchStatus `json:"status,omitempty"`
}

type UserSummary struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type MoveRequest struct {
	Id              string                       `json:"id"`
	MatchId         int                          `json:"match_id"`
	Status          repository.MoveRequestStatus `json:"status"`
	ProposedDate    *string                      `json:"proposed_date"`
	ProposedTime    *string                      `json:"proposed_time"`
	Note            *string                      `json:"note"`
	RejectionReason *string                      `json:"rejection_reason"`
	CreatedBy       *UserSummary                 `json:"created_by"`
	AwayDecidedBy   *UserSummary                 `json:"away_decided_by"`
	AwayDecidedAt   *time.Time                   `json:"away_decided_at"`
	TaDecidedBy     *UserSummary                 `json:"ta_decided_by"`
	TaDecidedAt     *time.Time                   `json:"ta_decided_at"`
	CreatedAt       time.Time                    `json:"created_at"`
}

type MoveRequestView struct {
	Request      *MoveRequest          `json:"request"`
	Capabilities *service.Capabilities `json:"capabilities"`
	CanAccept    bool                  `json:"can_accept"`
	CanRequest   bool                  `json:"can_request"`
}

type PendingMoveRequest struct {
	*MoveRequest
	Current *Match `json:"current"`
}

type DeletedCounts struct {
	MatchId int                    `json:"match_id"`
	Deleted *service.DeletedCounts `json:"deleted"`
}

func toLineupApprovalResponse(approval *repository.MatchLineupApproval) *LineupApproval {
	if approval == nil {
		return nil
	}
	return &LineupApproval{
		MatchId:      approval.MatchId,
		Venue:        approval.Venue,
		LeaderName:   approval.LeaderName,
		ApprovedById: approval.ApprovedById,
		ApprovedAt:   approval.ApprovedAt,
	}
}

func toRefereeApprovalResponse(approval *repository.MatchRefereeApproval) *RefereeApproval {
	return &RefereeApproval{
		MatchId:    approval.MatchId,
		RefIndex:   approval.RefIndex,
		Name:       approval.Name,
		RefereeNo:  approval.RefereeNo,
		NoRef2:     approval.NoRef2,
		ApprovedAt: approval.ApprovedAt,
	}
}

func toMatchStartResponse(start *repository.MatchStart) *MatchStart {
	if start == nil {
		return nil
	}
	return &MatchStart{MatchId: start.MatchId, StartedAt: start.StartedAt, StartedById: start.StartedById}
}

func toApprovalOverviewResponse(overview *service.ApprovalOverview) *ApprovalOverview {
	response := &ApprovalOverview{
		Approvals:  utils.Map(overview.Approvals, toLineupApprovalResponse),
		MatchStart: toMatchStartResponse(overview.MatchStart),
	}
	for _, approval := range overview.Approvals {
		switch approval.Venue {
		case repository.VenueHome:
			response.HomeSigned = true
		case repository.VenueAway:
			response.AwaySigned = true
		}
	}
	return response
}

func toLineupRowResponse(row *repository.MatchUploadLineup) *LineupRow {
	return &LineupRow{
		RowIndex: row.RowIndex,
		Number:   row.Number,
		Name:     row.Name,
		Leader:   row.IsLeader(),
		Reserve:  row.IsReserve(),
		Status:   row.Status,
	}
}

func toMatchResponse(match *repository.CalendarMatch, status repository.MatchStatus) *Match {
	if match == nil {
		return nil
	}
	return &Match{
		MatchId:      match.MatchId(),
		Date:         formatDate(match.Date),
		Time:         match.Time,
		League:       match.League,
		Pool:         match.Pool,
		VenueKey:     match.VenueKey,
		HomeTeam:     match.HomeTeam,
		AwayTeam:     match.AwayTeam,
		HomeHoldId:   match.HomeHoldId,
		AwayHoldId:   match.AwayHoldId,
		Referee1Name: match.Referee1Name,
		Referee1Id:   match.Referee1Id,
		Referee2Name: match.Referee2Name,
		Referee2Id:   match.Referee2Id,
		Status:       status,
	}
}

func toUserSummary(user *repository.User) *UserSummary {
	if user == nil {
		return nil
	}
	return &UserSummary{Id: user.ID, Name: user.DisplayName()}
}

func toMoveRequestResponse(request *repository.MatchMoveRequest) *MoveRequest {
	if request == nil {
		return nil
	}
	return &MoveRequest{
		Id:              request.ID,
		MatchId:         request.MatchId,
		Status:          request.Status,
		ProposedDate:    formatDate(request.ProposedDate),
		ProposedTime:    request.ProposedTime,
		Note:            request.Note,
		RejectionReason: request.RejectionReason,
		CreatedBy:       toUserSummary(request.CreatedBy),
		AwayDecidedBy:   toUserSummary(request.AwayDecidedBy),
		AwayDecidedAt:   request.AwayDecidedAt,
		TaDecidedBy:     toUserSummary(request.TaDecidedBy),
		TaDecidedAt:     request.TaDecidedAt,
		CreatedAt:       request.CreatedAt,
	}
}

func toMoveRequestViewResponse(view *service.MoveRequestView) *MoveRequestView {
	return &MoveRequestView{
		Request:      toMoveRequestResponse(view.Request),
		Capabilities: view.Capabilities,
		CanAccept:    view.CanAccept,
		CanRequest:   view.CanRequest,
	}
}

func toPendingMoveRequestResponse(pending *service.PendingMoveRequest) *PendingMoveRequest {
	return &PendingMoveRequest{
		MoveRequest: toMoveRequestResponse(pending.Request),
		Current:     toMatchResponse(pending.Current, ""),
	}
}

func formatDate(date *time.Time) *string {
	if date == nil {
		return nil
	}
	formatted := date.Format(time.DateOnly)
	return &formatted
}
