package model

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/roofsolar/planner/pkg/core"
)

// Address sources.
const (
	SourceBuiltin = "builtin"
	SourceGeocode = "geocode"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Address{},
}

// Address is one entry of the address catalog.
type Address struct {
	gorm.Model
	Address string  `json:"address" gorm:"size:255;uniqueIndex"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Source  string  `json:"source" gorm:"size:32;index"`
	// Details keeps provider specific data such as the geocoder place id.
	Details datatypes.JSON `json:"details,omitempty"`
}

func (*Address) TableName() string {
	return "addresses"
}

// Location converts the row to the planner's location type.
func (a *Address) Location() core.Location {
	return core.Location{Address: a.Address, Lat: a.Lat, Lng: a.Lng}
}

// GetOrInsert loads the row with the same address or inserts a as a new
// row. An existing row overwrites a.
func (a *Address) GetOrInsert(db *gorm.DB) (
	created bool,
	err error,
) {
	var existing Address
	err = db.Where("address = ?", a.Address).First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = db.Create(a).Error
			return err == nil, err
		}
		return false, err
	}
	*a = existing
	return false, nil
}
