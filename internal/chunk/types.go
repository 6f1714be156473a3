package chunk

// Section types carried in chunk metadata.
const (
	SectionOverview    = "overview"
	SectionSubsection  = "subsection"
	SectionCodeExample = "code_example"
)

// Content types assigned by the classifier.
const (
	TypeAPIReference      = "api_reference"
	TypeUsageGuide        = "usage_guide"
	TypeCodeExample       = "code_example"
	TypeSlotsReference    = "slots_reference"
	TypeEventsReference   = "events_reference"
	TypeDocumentation     = "documentation"
	TypeComponentOverview = "component_overview"
)

// Metadata describes where a chunk came from. It is a fixed record; the
// loosely-typed string map form exists only at the storage boundary.
type Metadata struct {
	Component      string // normalized v- identifier, always set
	SectionType    string // overview, subsection or code_example
	Subsection     string // empty for overview chunks
	ContentType    string
	ChunkIndex     int    // position within a split subsection
	Language       string // code chunks only
	HasExplanation bool   // code chunks only: prose preceded the block
	ChunkID        string
	Source         string
}

// Chunk is one retrieval-ready unit of documentation text. Content always
// starts with a heading line naming its component/subsection context.
type Chunk struct {
	ID            string
	Content       string
	ContentLength int
	WordCount     int
	Meta          Metadata
}

// Section is a top-level component section: the normalized component name,
// the original heading title and the raw body up to the next section heading.
type Section struct {
	Component string
	Title     string
	Content   string
}

// Subsection is a titled slice of a section body (Usage, API, Examples, ...).
type Subsection struct {
	Title   string
	Content string
}
