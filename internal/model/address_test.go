package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roofsolar/planner/pkg/core"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Address", &Address{}, "addresses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModels(t *testing.T) {
	assert.Len(t, DatabaseModels, 1)
	assert.IsType(t, &Address{}, DatabaseModels[0])
}

func TestAddressLocation(t *testing.T) {
	a := &Address{Address: "서울특별시 중구 세종대로 110", Lat: 37.5636, Lng: 126.9759}
	assert.Equal(t, core.Location{Address: "서울특별시 중구 세종대로 110", Lat: 37.5636, Lng: 126.9759}, a.Location())
}
