package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewEnquiryNumber builds a number in the form ENQ-YYYYMMDD-XXXXXXXX.
func NewEnquiryNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ENQ-%s-%s", now.Format("20060102"), suffix)
}
