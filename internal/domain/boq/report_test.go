package boq

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteInvalidEntriesCSV(t *testing.T) {
	t.Run("renders one line per entry", func(t *testing.T) {
		entries := []InvalidEntry{
			{
				Component: Component{
					Description: "HDMI Cable",
					Make:        "Kramer",
					Model:       "C-HM",
					Quantity:    3,
					RoomType:    "6pax Meeting Room",
					SourceFile:  "office.xlsx",
				},
				Reason: "Zero unit cost",
				Sheet:  "AV BOQ",
				Row:    14,
			},
			{
				Component: Component{Description: "Installation and Commissioning"},
				Reason:    "Missing description, make, or model",
				Sheet:     "AV BOQ",
				Row:       13,
			},
		}

		var buf bytes.Buffer
		require.NoError(t, WriteInvalidEntriesCSV(&buf, entries))

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "sheet,row,reason,description,make,model,quantity,unit_cost,room_type,source_file", lines[0])
		assert.Contains(t, lines[1], "Zero unit cost")
		assert.Contains(t, lines[1], "Kramer")
		assert.Contains(t, lines[2], "13")
	})

	t.Run("empty collection still writes the header", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteInvalidEntriesCSV(&buf, nil))

		assert.Equal(t, "sheet,row,reason,description,make,model,quantity,unit_cost,room_type,source_file",
			strings.TrimSpace(buf.String()))
	})
}
