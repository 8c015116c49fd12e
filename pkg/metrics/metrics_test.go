package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCollaborator(t *testing.T) {
	okBefore := testutil.ToFloat64(CollaboratorCalls.WithLabelValues("test", "ok"))
	errBefore := testutil.ToFloat64(CollaboratorCalls.WithLabelValues("test", "error"))

	ObserveCollaborator("test", time.Now(), nil)
	ObserveCollaborator("test", time.Now(), errors.New("down"))
	ObserveCollaborator("test", time.Now(), errors.New("down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(CollaboratorCalls.WithLabelValues("test", "ok")))
	assert.Equal(t, errBefore+2, testutil.ToFloat64(CollaboratorCalls.WithLabelValues("test", "error")))
}
