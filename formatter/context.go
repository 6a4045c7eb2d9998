package formatter

import (
	"bytes"
	"strconv"
	"time"

	"github.com/philipp01105/nlogconf/core"
)

// appendContext writes fields as a JSON object. Later fields win over
// earlier ones with the same key when the object is decoded.
func appendContext(buf *bytes.Buffer, fields []core.Field) {
	buf.WriteByte('{')
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		appendString(buf, field.Key)
		buf.WriteString(`":`)
		appendValue(buf, field)
	}
	buf.WriteByte('}')
}

// appendString writes s JSON-escaped, without quotes.
func appendString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

func appendQuoted(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	appendString(buf, s)
	buf.WriteByte('"')
}

// appendValue writes the JSON value of field. Durations are written in
// nanoseconds, times as RFC3339Nano strings.
func appendValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.IntType, core.Int64Type, core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).UTC().AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.StringType, core.ErrorType:
		appendQuoted(buf, field.Str)
	default:
		appendQuoted(buf, field.StringValue())
	}
}
