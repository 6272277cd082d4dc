package logging

import "encoding/json"

// JsonFormatter JSON 格式化器，每条日志一行
type JsonFormatter struct {
	TimestampFormat string
}

func NewJsonFormatter() *JsonFormatter {
	return &JsonFormatter{
		TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
	}
}

type jsonEntry struct {
	Time     string         `json:"time"`
	Level    string         `json:"level"`
	Category string         `json:"category,omitempty"`
	Message  string         `json:"msg"`
	Fields   map[string]any `json:"fields,omitempty"`
}

func (f *JsonFormatter) Format(entry *LogEntry) ([]byte, error) {
	out := jsonEntry{
		Time:     entry.Time.Format(f.TimestampFormat),
		Level:    entry.Level.String(),
		Category: entry.Category,
		Message:  entry.Message,
	}
	if len(entry.Fields) > 0 {
		out.Fields = make(map[string]any, len(entry.Fields))
		for _, field := range entry.Fields {
			out.Fields[field.Key] = field.Value
		}
	}

	buffer := getBuffer()
	defer putBuffer(buffer)

	enc := json.NewEncoder(buffer)
	enc.SetEscapeHTML(false)
	// Encode 自带换行
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return detach(buffer), nil
}
