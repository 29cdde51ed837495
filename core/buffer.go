package core

// SourceMap maps original source file names to their reconstructed text. Names
// keep the order in which they were first stored.
type SourceMap struct {
	names []string
	texts map[string]string
}

// NewSourceMap creates an empty SourceMap.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		texts: make(map[string]string),
	}
}

// Set stores the text of a file, replacing any earlier text.
func (m *SourceMap) Set(name, text string) {
	if _, exists := m.texts[name]; !exists {
		m.names = append(m.names, name)
	}

	m.texts[name] = text
}

// Get returns the text stored for a file.
func (m *SourceMap) Get(name string) (string, bool) {
	text, ok := m.texts[name]
	return text, ok
}

// Names returns the file names in insertion order.
func (m *SourceMap) Names() []string {
	return append([]string(nil), m.names...)
}

// Len returns the number of files.
func (m *SourceMap) Len() int {
	return len(m.names)
}
