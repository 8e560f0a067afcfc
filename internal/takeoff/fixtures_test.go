package takeoff

import (
	"strings"
	"testing"

	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/stretchr/testify/require"
)

// wallsJSON is a trimmed bimsync export: two walls and a slab.
const wallsJSON = `[
  {
    "ifcType": "IfcWall",
    "attributes": {
      "Name": {"value": "Wall-1"},
      "ObjectType": {"value": "Basic Wall"},
      "GlobalId": {"value": "2O2Fr$t4X7Zf8NOew3FLOH"}
    },
    "propertySets": {
      "ps-1": {
        "attributes": {"Name": {"value": "Pset_WallCommon"}},
        "properties": {
          "IsExternal": {"nominalValue": {"type": "boolean", "value": true}},
          "FireRating": {"nominalValue": {"type": "string", "value": "EI60"}}
        }
      }
    },
    "quantitySets": {
      "qs-1": {
        "attributes": {"Name": {"value": "Qto_WallBaseQuantities"}},
        "quantities": {
          "NetArea": {"value": {"type": "number", "unit": "m2", "value": 10.5}},
          "Length": {"value": {"type": "number", "unit": "m", "value": 4}}
        }
      }
    }
  },
  {
    "ifcType": "IfcWall",
    "attributes": {
      "Name": {"value": "Wall-2"},
      "ObjectType": {"value": "Basic Wall"},
      "GlobalId": {"value": "1hOSvn6df7F8_7GcBWlRGQ"}
    },
    "propertySets": {
      "ps-1": {
        "attributes": {"Name": {"value": "Pset_WallCommon"}},
        "properties": {
          "IsExternal": {"nominalValue": {"type": "boolean", "value": false}},
          "FireRating": {"nominalValue": {"type": "string", "value": "EI60"}}
        }
      }
    },
    "quantitySets": {
      "qs-1": {
        "attributes": {"Name": {"value": "Qto_WallBaseQuantities"}},
        "quantities": {
          "NetArea": {"value": {"type": "number", "unit": "m2", "value": 4.25}},
          "Length": {"value": {"type": "number", "unit": "m", "value": 2}}
        }
      }
    }
  },
  {
    "ifcType": "IfcSlab",
    "attributes": {
      "Name": {"value": "Slab-1"},
      "GlobalId": {"value": "0DWgwt6o1FOx7466fPk$jl"}
    },
    "quantitySets": {
      "qs-9": {
        "attributes": {"Name": {"value": "Qto_SlabBaseQuantities"}},
        "quantities": {
          "NetArea": {"value": {"type": "number", "unit": "m2", "value": 30}}
        }
      }
    }
  }
]`

var (
	pathEntity      = Path{"ifcType"}
	pathName        = Path{"attributes", "Name", "value"}
	pathFireRating  = Path{"propertySets", "ps-1", "properties", "FireRating", "nominalValue", "value"}
	pathIsExternal  = Path{"propertySets", "ps-1", "properties", "IsExternal", "nominalValue", "value"}
	pathWallNetArea = Path{"quantitySets", "qs-1", "quantities", "NetArea", "value", "value"}
	pathWallLength  = Path{"quantitySets", "qs-1", "quantities", "Length", "value", "value"}
	pathSlabNetArea = Path{"quantitySets", "qs-9", "quantities", "NetArea", "value", "value"}
)

func loadWalls(t *testing.T) []*model.Product {
	t.Helper()
	products, err := DecodeProducts(strings.NewReader(wallsJSON))
	require.NoError(t, err)
	require.Len(t, products, 3)
	return products
}

// productsOf builds flat products from plain maps.
func productsOf(items ...map[string]interface{}) []*model.Product {
	products := make([]*model.Product, len(items))
	for i, item := range items {
		products[i] = model.RecordFromMap(item)
	}
	return products
}

func column(t *testing.T, name string, typ model.PropertyType, unit string, path Path, mode model.GroupingMode, products []*model.Product) *DisplayProperty {
	t.Helper()
	var representative *model.Product
	if len(products) > 0 {
		representative = products[0]
	}
	p := NewDisplayProperty(name, typ, unit, path, representative)
	require.NoError(t, p.SetGroupingMode(mode))
	return p
}

func num(f float64) model.Value { return model.NumberValue(f) }

func str(s string) model.Value { return model.StringValue(s) }
