package reference

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Format(t *testing.T) {
	ref := New(PrefixIMPS)

	re := regexp.MustCompile(`^IMPS-\d{8}-[0-9A-F]{8}$`)
	assert.Regexp(t, re, ref)
	assert.Contains(t, ref, time.Now().Format("20060102"))
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := New(PrefixCard)
		assert.False(t, seen[ref], "reference %s generated twice", ref)
		seen[ref] = true
	}
}
