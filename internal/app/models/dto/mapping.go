package dto

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/yigit/hostel/internal/pkg/logger"
)

// copyFields copies same-named fields from src into dst. On failure dst keeps
// whatever was copied so far and the error is logged with both types.
func copyFields(dst, src any) {
	if err := copier.Copy(dst, src); err != nil {
		logger.Warn().Err(err).
			Str("from", fmt.Sprintf("%T", src)).
			Str("to", fmt.Sprintf("%T", dst)).
			Msg("Field mapping failed")
	}
}
