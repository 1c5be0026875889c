//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"exechire/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("booking not found")

	t.Run("マークした番兵はerrors.Isで一致する", func(t *testing.T) {
		cause := errs.New("no rows in result set")
		err := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("元のエラーもチェーンに残る", func(t *testing.T) {
		cause := errs.New("no rows in result set")
		err := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(err, cause))
	})

	t.Run("nilエラーは番兵そのものを返す", func(t *testing.T) {
		err := errs.Mark(nil, sentinel)

		require.ErrorIs(t, err, sentinel)
		assert.Equal(t, sentinel, err)
	})

	t.Run("メッセージは元のエラーのまま", func(t *testing.T) {
		cause := errs.New("no rows in result set")
		err := errs.Mark(cause, sentinel)

		assert.Equal(t, cause.Error(), err.Error())
	})

	t.Run("ラップ済みエラーのマークも一致する", func(t *testing.T) {
		cause := errs.Wrap(errs.New("no rows in result set"), "find booking")
		err := errs.Mark(cause, sentinel)

		assert.True(t, errors.Is(err, sentinel))
	})

	t.Run("詳細フォーマットは元のエラーを出力する", func(t *testing.T) {
		cause := errs.New("no rows in result set")
		err := errs.Mark(cause, sentinel)

		assert.Contains(t, fmt.Sprintf("%+v", err), "no rows in result set")
	})
}
