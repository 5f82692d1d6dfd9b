package booking

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

var videoLinkNamespace = uuid.MustParse("9f2c1a60-7b44-4b76-8f1d-3f1a2b9c4d5e")

// VideoLink derives the consultation room link from the appointment id. The
// same id always yields the same link, so re-confirming an appointment never
// mints a second room.
func VideoLink(appointmentID uint) string {
	base := os.Getenv("VIDEO_CALL_BASE_URL")
	if base == "" {
		base = "https://meet.medilink.app"
	}
	room := uuid.NewSHA1(videoLinkNamespace, []byte(fmt.Sprintf("appointment-%d", appointmentID)))
	return fmt.Sprintf("%s/%s", base, room.String())
}
