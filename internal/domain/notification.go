package domain

import "fmt"

// NotificationType tags what produced a notification
type NotificationType string

const (
	NotificationParticipationRequest NotificationType = "participation_request"
	NotificationParticipationUpdate  NotificationType = "participation_update"
	NotificationPost                 NotificationType = "post"
)

// NotificationDraft is a notification that has not been stored yet
type NotificationDraft struct {
	UserID  int64
	Type    NotificationType
	Message string
	URL     *string
	PostID  *int64
}

// ParticipationRequested notifies the organising association of a new application
func ParticipationRequested(associationID int64, volunteerName string, eventID int64, eventTitle string) NotificationDraft {
	url := fmt.Sprintf("/events/%d/participants", eventID)
	return NotificationDraft{
		UserID:  associationID,
		Type:    NotificationParticipationRequest,
		Message: fmt.Sprintf("%s applied to event '%s'", volunteerName, eventTitle),
		URL:     &url,
	}
}

// ParticipationDecided notifies the volunteer of an accept or reject
func ParticipationDecided(volunteerID int64, status ParticipationStatus, eventID int64, eventTitle string) NotificationDraft {
	verdict := "ACCEPTED"
	if status == ParticipationRejected {
		verdict = "REJECTED"
	}
	url := DetailURL("event", eventID)
	return NotificationDraft{
		UserID:  volunteerID,
		Type:    NotificationParticipationUpdate,
		Message: fmt.Sprintf("You have been %s to event '%s'", verdict, eventTitle),
		URL:     &url,
	}
}

// PostApplauded notifies the post owner. The caller skips self-applause.
func PostApplauded(ownerID int64, applauderName string, postID int64, postTitle string) NotificationDraft {
	url := DetailURL("post", postID)
	return NotificationDraft{
		UserID:  ownerID,
		Type:    NotificationPost,
		Message: fmt.Sprintf("%s applauded your post: %s", applauderName, postTitle),
		URL:     &url,
		PostID:  &postID,
	}
}
