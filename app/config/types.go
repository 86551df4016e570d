package config

// Topic describes one browsable news category: the keyword query sent to
// the search endpoint and the hand-authored placeholder items shown when
// the search yields nothing. A topic without a query never triggers an
// external call.
type Topic struct {
	Name         string        `yaml:"name"`
	Query        string        `yaml:"query"`
	Placeholders []Placeholder `yaml:"placeholders"`
}

// Placeholder is one hand-authored fallback item.
type Placeholder struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// TopicSet holds the known topics, keyed by name.
type TopicSet struct {
	topics map[string]*Topic
	order  []string
}

// Get returns the topic for a name, or nil when the name is unknown.
func (s *TopicSet) Get(name string) *Topic {
	return s.topics[name]
}

// Names lists the known topic names in registration order.
func (s *TopicSet) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Count returns the number of known topics.
func (s *TopicSet) Count() int {
	return len(s.order)
}

func (s *TopicSet) add(t *Topic) {
	if _, exists := s.topics[t.Name]; !exists {
		s.order = append(s.order, t.Name)
	}
	s.topics[t.Name] = t
}
