package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/aquarium/components"
)

func TestParseTag(t *testing.T) {
	h := ParseTag("bar,max:2,fmt:%.1f")
	assert.Equal(t, WidgetBar, h.Widget)
	assert.Equal(t, float32(2), h.Max)
	assert.Equal(t, "%.1f", h.Format)

	h = ParseTag("")
	assert.Equal(t, WidgetAuto, h.Widget)
	assert.Equal(t, float32(1), h.Max, "bars default to a unit range")

	h = ParseTag("angle,min:oops")
	assert.Equal(t, WidgetAngle, h.Widget)
	assert.Zero(t, h.Min)
}

func TestExtractFieldsSwim(t *testing.T) {
	swim := components.Swim{Phase: 0.25, Speed: 1.5, Heading: 0.5, Surfacing: true}
	fields := ExtractFields(&swim)
	require.Len(t, fields, 7)

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}
	assert.Equal(t, WidgetBar, byName["Speed"].Hint.Widget)
	assert.Equal(t, float32(2), byName["Speed"].Hint.Max)
	assert.Equal(t, float32(1.5), byName["Speed"].Value)
	assert.Equal(t, WidgetAngle, byName["Heading"].Hint.Widget)
	assert.Equal(t, WidgetBool, byName["Surfacing"].Hint.Widget)
	assert.Equal(t, "%.3f", byName["Violation"].Hint.Format)
}

func TestExtractFieldsSkipsTagged(t *testing.T) {
	jelly := components.Jelly{Index: 2, Name: "Ada", Route: "/about", Surfaced: 3}
	fields := ExtractFields(jelly)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Name", "Route", "Surfaced"}, names)
}

func TestExtractFieldsNonStruct(t *testing.T) {
	assert.Nil(t, ExtractFields(42))
	assert.Nil(t, ExtractFields((*components.Swim)(nil)))
}

func TestExtractFieldsAutoWidget(t *testing.T) {
	type probe struct {
		On    bool
		Count int
		name  string
	}
	fields := ExtractFields(probe{On: true, Count: 3, name: "x"})
	require.Len(t, fields, 2)
	assert.Equal(t, WidgetBool, fields[0].Hint.Widget)
	assert.Equal(t, WidgetLabel, fields[1].Hint.Widget)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "0.50", FormatValue(float32(0.5), ""))
	assert.Equal(t, "3", FormatValue(3, ""))
	assert.Equal(t, "0.125", FormatValue(0.125, "%.3f"))
	assert.Equal(t, "/about", FormatValue("/about", ""))
}

func TestFieldHeight(t *testing.T) {
	assert.Equal(t, int32(44), FieldHeight(Field{Value: float32(1), Hint: Hint{Widget: WidgetAngle}}))
	assert.Equal(t, int32(20), FieldHeight(Field{Value: "x", Hint: Hint{Widget: WidgetAngle}}))
	assert.Equal(t, int32(18), FieldHeight(Field{Value: true, Hint: Hint{Widget: WidgetBool}}))
}
