package takeoff

import (
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
)

// IdentificationSetName names the set of attribute columns every product gets.
const IdentificationSetName = "Identification"

// DisplayPropertySet is a named group of columns: the identification
// attributes, one property set or one quantity set.
type DisplayPropertySet struct {
	Name       string             `json:"name"`
	Properties []*DisplayProperty `json:"properties"`
}

var identificationColumns = []struct {
	name string
	path Path
}{
	{"Name", Path{"attributes", "Name", "value"}},
	{"Type", Path{"attributes", "ObjectType", "value"}},
	{"GUID", Path{"attributes", "GlobalId", "value"}},
	{"Tag", Path{"attributes", "Tag", "value"}},
	{"Entity", Path{"ifcType"}},
}

// ProductProperties derives every column the product offers: identification
// attributes first, then property sets and quantity sets in the order their
// keys appear on the product. Only this one product's schema is read.
func ProductProperties(product *model.Product) []DisplayPropertySet {
	identification := DisplayPropertySet{Name: IdentificationSetName, Properties: []*DisplayProperty{}}
	for _, col := range identificationColumns {
		if col.path.Resolve(product).IsNull() {
			continue
		}
		identification.Properties = append(identification.Properties,
			NewDisplayProperty(col.name, model.PropertyTypeString, "", col.path, product))
	}

	sets := []DisplayPropertySet{identification}
	sets = append(sets, propertySets(product)...)
	sets = append(sets, quantitySets(product)...)
	return sets
}

func propertySets(product *model.Product) []DisplayPropertySet {
	psets := product.Object("propertySets")
	sets := make([]DisplayPropertySet, 0, psets.Len())
	for _, setKey := range psets.Keys() {
		pset := psets.Object(setKey)
		set := DisplayPropertySet{Name: setName(pset, setKey), Properties: []*DisplayProperty{}}
		properties := pset.Object("properties")
		for _, propKey := range properties.Keys() {
			nominal := properties.Object(propKey).Object("nominalValue")
			set.Properties = append(set.Properties, NewDisplayProperty(
				propKey,
				propertyType(nominal),
				stringField(nominal, "unit"),
				Path{"propertySets", setKey, "properties", propKey, "nominalValue", "value"},
				product,
			))
		}
		sets = append(sets, set)
	}
	return sets
}

func quantitySets(product *model.Product) []DisplayPropertySet {
	qsets := product.Object("quantitySets")
	sets := make([]DisplayPropertySet, 0, qsets.Len())
	for _, setKey := range qsets.Keys() {
		qset := qsets.Object(setKey)
		set := DisplayPropertySet{Name: setName(qset, setKey), Properties: []*DisplayProperty{}}
		quantities := qset.Object("quantities")
		for _, qKey := range quantities.Keys() {
			value := quantities.Object(qKey).Object("value")
			set.Properties = append(set.Properties, NewDisplayProperty(
				qKey,
				propertyType(value),
				stringField(value, "unit"),
				Path{"quantitySets", setKey, "quantities", qKey, "value", "value"},
				product,
			))
		}
		sets = append(sets, set)
	}
	return sets
}

// setName prefers the set's IFC Name attribute over its key.
func setName(set *model.Record, key string) string {
	name := Path{"attributes", "Name", "value"}.Resolve(set)
	if name.IsNull() {
		return key
	}
	return name.String()
}

func propertyType(descriptor *model.Record) model.PropertyType {
	if typ := stringField(descriptor, "type"); typ != "" {
		return model.PropertyType(typ)
	}
	return model.PropertyTypeString
}

func stringField(rec *model.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

// ProductColumns flattens ProductProperties into one ordered column list.
func ProductColumns(product *model.Product) []*DisplayProperty {
	return lo.FlatMap(ProductProperties(product), func(set DisplayPropertySet, _ int) []*DisplayProperty {
		return set.Properties
	})
}

// FindColumn returns the column with the given path.
func FindColumn(columns []*DisplayProperty, path Path) (*DisplayProperty, bool) {
	return lo.Find(columns, func(c *DisplayProperty) bool {
		return c.Path.Equal(path)
	})
}
