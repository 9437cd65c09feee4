package usecase

import (
	"errors"
	"strings"
	"time"

	domain "github.com/samuelordialeseya/fruit-pos/internal/entity"
)

type NoticeLevel string

const (
	NoticeInfo  NoticeLevel = "info"
	NoticeError NoticeLevel = "error"
)

// Notice is a short-lived message for the operator. The presentation layer
// decides how to show it and dismisses it after TTL.
type Notice struct {
	Level   NoticeLevel   `json:"level"`
	Message string        `json:"message"`
	TTL     time.Duration `json:"-"`
}

func (n Notice) IsZero() bool { return n.Message == "" }

// Outcome is what every POS command returns next to its error. Replayed is
// set when Value comes from an earlier run of the same idempotent command.
type Outcome[T any] struct {
	Value    T
	Notice   Notice
	Replayed bool
}

func infoNotice(ttl time.Duration, msg string) Notice {
	return Notice{Level: NoticeInfo, Message: msg, TTL: ttl}
}

// errorNotice renders validation-class errors. Not-found and anything else
// produce no notice.
func errorNotice(ttl time.Duration, err error) Notice {
	if errors.Is(err, domain.ErrValidation) || errors.Is(err, domain.ErrEmptyCollection) || errors.Is(err, ErrDuplicateCheckout) {
		return Notice{Level: NoticeError, Message: noticeText(err), TTL: ttl}
	}
	return Notice{}
}

// noticeText drops the sentinel prefix: "invalid input: enter a valid quantity"
// becomes "enter a valid quantity".
func noticeText(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{domain.ErrValidation, domain.ErrEmptyCollection} {
		if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok && rest != "" {
			return rest
		}
	}
	return msg
}
