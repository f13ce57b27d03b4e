package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLoggerLevels(t *testing.T) {
	testCases := []struct {
		level    string
		verbose  bool
		expected logrus.Level
	}{
		{"", false, logrus.WarnLevel},
		{"debug", false, logrus.DebugLevel},
		{"INFO", false, logrus.InfoLevel},
		{"error", false, logrus.ErrorLevel},
		{"bogus", false, logrus.WarnLevel},
		{"error", true, logrus.DebugLevel},
	}

	for _, tc := range testCases {
		l := newLogger(&bytes.Buffer{}, tc.level, tc.verbose)
		assert.Equal(t, tc.expected, l.GetLevel(), "level %q verbose %v", tc.level, tc.verbose)
	}
}

func TestNewLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "debug", false)

	l.WithField("login", "octocat").Debug("fetching stats")

	assert.Contains(t, buf.String(), "login=octocat")
	assert.Contains(t, buf.String(), "fetching stats")
}
