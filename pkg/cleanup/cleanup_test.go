package cleanup_test

import (
	"errors"
	"testing"

	"github.com/limbo/habits/pkg/cleanup"
	"github.com/stretchr/testify/assert"
)

func TestCleanUp(t *testing.T) {
	var order []string
	for _, name := range []string{"database", "server"} {
		cleanup.Register(&cleanup.Job{
			Name: name,
			F: func() error {
				order = append(order, name)
				return nil
			},
		})
	}
	cleanup.Register(&cleanup.Job{
		Name: "failing",
		F: func() error {
			order = append(order, "failing")
			return errors.New("close error")
		},
	})

	cleanup.CleanUp()
	assert.Equal(t, []string{"failing", "server", "database"}, order)

	cleanup.CleanUp()
	assert.Len(t, order, 3)
}
