package takeoff

import (
	"encoding/json"

	"github.com/google/uuid"
	ierr "github.com/kuperiu/bimsyncManager/internal/errors"
	"github.com/kuperiu/bimsyncManager/internal/model"
	"github.com/samber/lo"
)

const (
	IconSlider = "slider"
	IconText   = "text"
)

// DisplayProperty is one selectable takeoff column derived from a product schema.
//
// ColumnGUID keys the column in pivot rows and never changes with the grouping
// mode. Exactly one of AvailableGroupingModes is selected at any time.
type DisplayProperty struct {
	Name       string
	Type       model.PropertyType
	Unit       string
	Path       Path
	Icon       string
	GUID       string
	ColumnGUID string
	// Value on the representative product, for previews only.
	PropertyValue model.Value

	groupingMode           model.GroupingMode
	availableGroupingModes []model.GroupingMode
}

// NewDisplayProperty creates a column and resolves its preview value
// against product.
func NewDisplayProperty(name string, typ model.PropertyType, unit string, path Path, product *model.Product) *DisplayProperty {
	icon := IconText
	if typ.IsNumeric() {
		icon = IconSlider
	}
	modes := model.GroupingModesFor(typ)
	return &DisplayProperty{
		Name:                   name,
		Type:                   typ,
		Unit:                   unit,
		Path:                   append(Path(nil), path...),
		Icon:                   icon,
		GUID:                   uuid.New().String(),
		ColumnGUID:             uuid.New().String(),
		PropertyValue:          path.Resolve(product),
		groupingMode:           modes[0],
		availableGroupingModes: modes,
	}
}

func (p *DisplayProperty) GroupingMode() model.GroupingMode {
	return p.groupingMode
}

// AvailableGroupingModes returns a copy of the modes this column offers.
func (p *DisplayProperty) AvailableGroupingModes() []model.GroupingMode {
	return append([]model.GroupingMode(nil), p.availableGroupingModes...)
}

// IsEnabled reports whether mode is the selected grouping mode.
func (p *DisplayProperty) IsEnabled(mode model.GroupingMode) bool {
	return p.groupingMode == mode
}

// SetGroupingMode selects mode. Modes outside the available set are
// rejected and the current selection is kept.
func (p *DisplayProperty) SetGroupingMode(mode model.GroupingMode) error {
	if !lo.Contains(p.availableGroupingModes, mode) {
		return ierr.NewErrorf("grouping mode %s not available for %s", mode, p.Name).
			WithHintf("Column %q of type %q supports: %v", p.Name, p.Type, p.availableGroupingModes).
			Mark(ierr.ErrValidation)
	}
	p.groupingMode = mode
	return nil
}

// DisplayedValue renders the preview value: "null" when absent, numbers
// rounded to two decimals, unit appended when set.
func (p *DisplayProperty) DisplayedValue() string {
	return FormatCell(p.PropertyValue, p.Unit)
}

// DisplayName is the column header, e.g. "Sum of Area (m2)".
func (p *DisplayProperty) DisplayName() string {
	name := p.groupingMode.Prefix() + p.Name
	if p.Unit != "" {
		name += " (" + p.Unit + ")"
	}
	return name
}

// Header describes the column for stored reports.
func (p *DisplayProperty) Header() model.ColumnHeader {
	return model.ColumnHeader{
		ColumnGUID:  p.ColumnGUID,
		Name:        p.Name,
		DisplayName: p.DisplayName(),
		Type:        p.Type,
		Unit:        p.Unit,
		Path:        append([]string(nil), p.Path...),
		Mode:        p.groupingMode,
	}
}

// FormatCell renders a value the way takeoff tables show it.
func FormatCell(v model.Value, unit string) string {
	if v.IsNull() {
		return "null"
	}
	if v.IsNumber() {
		v = model.NumberValue(model.Round2(v.Number))
	}
	text := v.String()
	if unit != "" {
		text += " " + unit
	}
	return text
}

type groupingModeView struct {
	Mode      model.GroupingMode `json:"mode"`
	Label     string             `json:"label"`
	IsEnabled bool               `json:"isEnabled"`
}

type displayPropertyView struct {
	Name                   string             `json:"name"`
	Type                   model.PropertyType `json:"type"`
	Unit                   string             `json:"unit,omitempty"`
	Path                   []string           `json:"path"`
	Icon                   string             `json:"icon"`
	GUID                   string             `json:"guid"`
	ColumnGUID             string             `json:"columnGuid"`
	GroupingMode           model.GroupingMode `json:"groupingMode"`
	AvailableGroupingModes []groupingModeView `json:"availableGroupingModes"`
	DisplayName            string             `json:"displayName"`
	DisplayedValue         string             `json:"displayedValue"`
	PropertyValue          model.Value        `json:"propertyValue"`
}

func (p *DisplayProperty) MarshalJSON() ([]byte, error) {
	return json.Marshal(displayPropertyView{
		Name:         p.Name,
		Type:         p.Type,
		Unit:         p.Unit,
		Path:         p.Path,
		Icon:         p.Icon,
		GUID:         p.GUID,
		ColumnGUID:   p.ColumnGUID,
		GroupingMode: p.groupingMode,
		AvailableGroupingModes: lo.Map(p.availableGroupingModes, func(m model.GroupingMode, _ int) groupingModeView {
			return groupingModeView{Mode: m, Label: m.Label(), IsEnabled: p.IsEnabled(m)}
		}),
		DisplayName:    p.DisplayName(),
		DisplayedValue: p.DisplayedValue(),
		PropertyValue:  p.PropertyValue,
	})
}
