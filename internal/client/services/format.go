package services

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/common"
	"github.com/dmitrijs2005/folio/internal/models"
)

const (
	experienceDateLayout = "Jan 2006"
	postDateLayout       = "January 2, 2006"
	present              = "Present"

	unavailableMessage = "Could not reach the server. Please try again."
	serverMessage      = "Something went wrong. Please try again."
)

// ExperiencePeriod renders "Jan 2020 - Present" style ranges in loc.
func ExperiencePeriod(e models.Experience, loc *time.Location) string {
	start := time.Unix(e.StartDate, 0).In(loc).Format(experienceDateLayout)
	end := present
	if e.EndDate != nil {
		end = time.Unix(*e.EndDate, 0).In(loc).Format(experienceDateLayout)
	}
	return start + " - " + end
}

// PostDate renders a post timestamp, or "" when it is unset.
func PostDate(unix int64, loc *time.Location) string {
	if unix == 0 {
		return ""
	}
	return time.Unix(unix, 0).In(loc).Format(postDateLayout)
}

// UserMessage is the line shown to the user for err. Messages the server
// sent and local validation messages are shown verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var verr *common.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	if apiErr, ok := client.AsAPIError(err); ok {
		if errors.Is(err, client.ErrServer) {
			return serverMessage
		}
		return apiErr.Error()
	}
	if errors.Is(err, client.ErrUnavailable) {
		return unavailableMessage
	}
	return err.Error()
}
