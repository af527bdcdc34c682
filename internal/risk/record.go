package risk

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nautilus/seacheck/internal/model"
)

// ErrRecordExists is returned when a record has already been built for
// this session. One completed session produces exactly one record.
var ErrRecordExists = errors.New("risk: assessment record already built")

// Dates and times are stored the way the app displays them.
const (
	dateLayout = "02.01.2006"
	timeLayout = "15:04"
)

// BuildRecord constructs the assessment record for a completed session.
// It fails on sessions that are not complete and on sessions that have
// already produced a record.
func (s *Session) BuildRecord(userID string, boat model.Boat, now time.Time) (model.Assessment, error) {
	if s.state != StateComplete {
		return model.Assessment{}, ErrInvalidTransition
	}
	if s.recordBuilt {
		return model.Assessment{}, ErrRecordExists
	}
	s.recordBuilt = true

	return model.Assessment{
		ID:                 uuid.NewString(),
		BoatID:             boat.ID,
		BoatName:           boat.Name,
		UserID:             userID,
		Date:               now.Format(dateLayout),
		Time:               now.Format(timeLayout),
		Score:              s.Score(),
		Passengers:         s.passengerCount,
		ChecklistResponses: s.Answers(),
	}, nil
}
