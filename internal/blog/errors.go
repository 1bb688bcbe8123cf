package blog

import (
	"fmt"

	"github.com/2beens/bloghub/internal/errs"
)

func ErrBlogQuota(limit int) error {
	return fmt.Errorf("%w: at most %d blogs per day", errs.ErrQuotaExceeded, limit)
}

func ErrCommentQuota(limit int) error {
	return fmt.Errorf("%w: at most %d comments per day", errs.ErrQuotaExceeded, limit)
}

func ErrDuplicate(blogID int64) error {
	return fmt.Errorf("%w: already commented on blog %d", errs.ErrDuplicateComment, blogID)
}
