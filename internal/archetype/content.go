package archetype

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// missing accumulates absent required fields.
type missing []string

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func (m *missing) text(name, v string) {
	if blank(v) {
		*m = append(*m, name)
	}
}

func (m *missing) list(name string, v []string) {
	if !slices.ContainsFunc(v, func(s string) bool { return !blank(s) }) {
		*m = append(*m, name)
	}
}

func (m *missing) add(name string) { *m = append(*m, name) }

func (m missing) result() []string {
	if len(m) == 0 {
		return nil
	}
	return m
}

func linkHTML(l Linker, fields ...*string) {
	for _, f := range fields {
		if !blank(*f) {
			*f = l.HTML(*f)
		}
	}
}

// nonBlank drops empty entries so they produce no markup.
func nonBlank(v []string) []string {
	return slices.DeleteFunc(slices.Clone(v), blank)
}

// ---------------------------------------------------------------------------
// hero-title
// ---------------------------------------------------------------------------

type HeroTitleContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageRef
}

func (c *HeroTitleContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	return m.result()
}

func (c *HeroTitleContent) ImageSlots() []*ImageRef { return []*ImageRef{&c.ImageRef} }

func (c *HeroTitleContent) link(l Linker) error {
	c.ImageRef.link(l)
	return nil
}

// ---------------------------------------------------------------------------
// framed-list
// ---------------------------------------------------------------------------

type FramedListContent struct {
	Title     string   `json:"title"`
	ListItems []string `json:"listItems"`
	Ordered   bool     `json:"ordered"`
	IconHTML  string   `json:"iconHtml"`
	IntroHTML string   `json:"introHtml"`
}

func (c *FramedListContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.list("listItems", c.ListItems)
	return m.result()
}

func (c *FramedListContent) ImageSlots() []*ImageRef { return nil }

func (c *FramedListContent) Items() []string { return nonBlank(c.ListItems) }

func (c *FramedListContent) link(l Linker) error {
	linkHTML(l, &c.IconHTML, &c.IntroHTML)
	return nil
}

// ---------------------------------------------------------------------------
// two-column-detail
// ---------------------------------------------------------------------------

type TwoColumnDetailContent struct {
	Title        string `json:"title"`
	LeftHeading  string `json:"leftHeading"`
	LeftHTML     string `json:"leftHtml"`
	RightHeading string `json:"rightHeading"`
	RightHTML    string `json:"rightHtml"`
	ImageRef
}

func (c *TwoColumnDetailContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.text("leftHtml", c.LeftHTML)
	m.text("rightHtml", c.RightHTML)
	return m.result()
}

func (c *TwoColumnDetailContent) ImageSlots() []*ImageRef { return []*ImageRef{&c.ImageRef} }

func (c *TwoColumnDetailContent) link(l Linker) error {
	linkHTML(l, &c.LeftHTML, &c.RightHTML)
	c.ImageRef.link(l)
	return nil
}

// ---------------------------------------------------------------------------
// full-text
// ---------------------------------------------------------------------------

// FullTextContent carries its body as HTML or markdown. When both are set,
// BodyHTML wins.
type FullTextContent struct {
	Title        string `json:"title"`
	BodyHTML     string `json:"bodyHtml"`
	BodyMarkdown string `json:"bodyMarkdown"`
}

func (c *FullTextContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if blank(c.BodyHTML) && blank(c.BodyMarkdown) {
		m.add("bodyHtml|bodyMarkdown")
	}
	return m.result()
}

func (c *FullTextContent) ImageSlots() []*ImageRef { return nil }

func (c *FullTextContent) link(l Linker) error {
	if blank(c.BodyHTML) && !blank(c.BodyMarkdown) {
		html, err := l.Markdown(c.BodyMarkdown)
		if err != nil {
			return fmt.Errorf("bodyMarkdown: %w", err)
		}
		c.BodyHTML = html
	}
	linkHTML(l, &c.BodyHTML)
	return nil
}

// ---------------------------------------------------------------------------
// discussion-table
// ---------------------------------------------------------------------------

type DiscussionTableContent struct {
	Title         string   `json:"title"`
	Prompts       []string `json:"prompts"`
	ColumnHeaders []string `json:"columnHeaders"`
}

func (c *DiscussionTableContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.list("prompts", c.Prompts)
	return m.result()
}

func (c *DiscussionTableContent) ImageSlots() []*ImageRef { return nil }

func (c *DiscussionTableContent) PromptList() []string { return nonBlank(c.Prompts) }

// AnswerColumns is the number of empty cells after each prompt.
func (c *DiscussionTableContent) AnswerColumns() []int {
	if len(c.ColumnHeaders) > 1 {
		return seq(len(c.ColumnHeaders) - 1)
	}
	return seq(1)
}

func (c *DiscussionTableContent) link(Linker) error { return nil }

// ---------------------------------------------------------------------------
// analysis-table
// ---------------------------------------------------------------------------

type AnalysisTableContent struct {
	Title   string     `json:"title"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
	Caption string     `json:"caption"`
}

func (c *AnalysisTableContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.list("headers", c.Headers)
	if len(c.Rows) == 0 {
		m.add("rows")
	}
	return m.result()
}

func (c *AnalysisTableContent) ImageSlots() []*ImageRef { return nil }

// width is the widest of the header row and every data row.
func (c *AnalysisTableContent) width() int {
	w := len(c.Headers)
	for _, row := range c.Rows {
		w = max(w, len(row))
	}
	return w
}

// Columns returns the header row padded with empty cells to the table width.
func (c *AnalysisTableContent) Columns() []string {
	cells := make([]string, c.width())
	copy(cells, c.Headers)
	return cells
}

// Grid pads every row to the table width. No authored cell is dropped.
func (c *AnalysisTableContent) Grid() [][]string {
	w := c.width()
	out := make([][]string, len(c.Rows))
	for i, row := range c.Rows {
		cells := make([]string, w)
		copy(cells, row)
		out[i] = cells
	}
	return out
}

func (c *AnalysisTableContent) link(Linker) error { return nil }

// ---------------------------------------------------------------------------
// image-prompt
// ---------------------------------------------------------------------------

type ImagePromptContent struct {
	Title      string   `json:"title"`
	PromptHTML string   `json:"promptHtml"`
	Questions  []string `json:"questions"`
	ImageRef
}

func (c *ImagePromptContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.text("promptHtml", c.PromptHTML)
	return m.result()
}

func (c *ImagePromptContent) ImageSlots() []*ImageRef { return []*ImageRef{&c.ImageRef} }

func (c *ImagePromptContent) QuestionList() []string { return nonBlank(c.Questions) }

func (c *ImagePromptContent) link(l Linker) error {
	linkHTML(l, &c.PromptHTML)
	c.ImageRef.link(l)
	return nil
}

// ---------------------------------------------------------------------------
// checklist
// ---------------------------------------------------------------------------

type ChecklistContent struct {
	Title     string   `json:"title"`
	Items     []string `json:"items"`
	IntroHTML string   `json:"introHtml"`
}

func (c *ChecklistContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.list("items", c.Items)
	return m.result()
}

func (c *ChecklistContent) ImageSlots() []*ImageRef { return nil }

func (c *ChecklistContent) ItemList() []string { return nonBlank(c.Items) }

func (c *ChecklistContent) link(l Linker) error {
	linkHTML(l, &c.IntroHTML)
	return nil
}

// ---------------------------------------------------------------------------
// task-preparation
// ---------------------------------------------------------------------------

type TaskPreparationContent struct {
	Title       string   `json:"title"`
	TaskHTML    string   `json:"taskHtml"`
	Steps       []string `json:"steps"`
	Materials   []string `json:"materials"`
	TimeMinutes int      `json:"timeMinutes"`
}

func (c *TaskPreparationContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.text("taskHtml", c.TaskHTML)
	return m.result()
}

func (c *TaskPreparationContent) ImageSlots() []*ImageRef { return nil }

func (c *TaskPreparationContent) StepList() []string { return nonBlank(c.Steps) }

func (c *TaskPreparationContent) MaterialList() []string { return nonBlank(c.Materials) }

func (c *TaskPreparationContent) link(l Linker) error {
	linkHTML(l, &c.TaskHTML)
	return nil
}

// ---------------------------------------------------------------------------
// worksheet
// ---------------------------------------------------------------------------

type WorksheetSection struct {
	Heading          string `json:"heading"`
	InstructionsHTML string `json:"instructionsHtml"`
	Lines            int    `json:"lines"`
}

type WorksheetContent struct {
	Title    string             `json:"title"`
	Sections []WorksheetSection `json:"sections"`
}

func (c *WorksheetContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if len(c.Sections) == 0 {
		m.add("sections")
	}
	for i, s := range c.Sections {
		m.text(fmt.Sprintf("sections[%d].heading", i), s.Heading)
	}
	return m.result()
}

func (c *WorksheetContent) ImageSlots() []*ImageRef { return nil }

func (c *WorksheetContent) link(l Linker) error {
	for i := range c.Sections {
		linkHTML(l, &c.Sections[i].InstructionsHTML)
	}
	return nil
}

// ---------------------------------------------------------------------------
// matching-task
// ---------------------------------------------------------------------------

type MatchingPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

type MatchingTaskContent struct {
	Title            string         `json:"title"`
	Pairs            []MatchingPair `json:"pairs"`
	InstructionsHTML string         `json:"instructionsHtml"`
}

func (c *MatchingTaskContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if len(c.Pairs) == 0 {
		m.add("pairs")
	}
	for i, p := range c.Pairs {
		m.text(fmt.Sprintf("pairs[%d].left", i), p.Left)
		m.text(fmt.Sprintf("pairs[%d].right", i), p.Right)
	}
	return m.result()
}

func (c *MatchingTaskContent) ImageSlots() []*ImageRef { return nil }

func (c *MatchingTaskContent) LeftItems() []string {
	out := make([]string, len(c.Pairs))
	for i, p := range c.Pairs {
		out[i] = p.Left
	}
	return out
}

// RightItems are sorted so the column order does not give the answers away
// while staying deterministic.
func (c *MatchingTaskContent) RightItems() []string {
	out := make([]string, len(c.Pairs))
	for i, p := range c.Pairs {
		out[i] = p.Right
	}
	slices.Sort(out)
	return out
}

func (c *MatchingTaskContent) link(l Linker) error {
	linkHTML(l, &c.InstructionsHTML)
	return nil
}

// ---------------------------------------------------------------------------
// gap-fill
// ---------------------------------------------------------------------------

var gapPattern = regexp.MustCompile(`\[\[([^\[\]]*)\]\]`)

// GapSegment is either literal text or a gap with its answer.
type GapSegment struct {
	Text   string
	Gap    bool
	Answer string
}

type GapFillContent struct {
	Title            string `json:"title"`
	Text             string `json:"text"`
	ShowWordBank     bool   `json:"showWordBank"`
	InstructionsHTML string `json:"instructionsHtml"`
}

func (c *GapFillContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.text("text", c.Text)
	return m.result()
}

func (c *GapFillContent) ImageSlots() []*ImageRef { return nil }

// Segments splits Text at [[answer]] markers.
func (c *GapFillContent) Segments() []GapSegment {
	var out []GapSegment
	last := 0
	for _, loc := range gapPattern.FindAllStringSubmatchIndex(c.Text, -1) {
		if loc[0] > last {
			out = append(out, GapSegment{Text: c.Text[last:loc[0]]})
		}
		out = append(out, GapSegment{Gap: true, Answer: strings.TrimSpace(c.Text[loc[2]:loc[3]])})
		last = loc[1]
	}
	if last < len(c.Text) {
		out = append(out, GapSegment{Text: c.Text[last:]})
	}
	return out
}

// WordBank lists the distinct answers in sorted order.
func (c *GapFillContent) WordBank() []string {
	var words []string
	for _, s := range c.Segments() {
		if s.Gap && s.Answer != "" {
			words = append(words, s.Answer)
		}
	}
	slices.Sort(words)
	return slices.Compact(words)
}

func (c *GapFillContent) link(l Linker) error {
	linkHTML(l, &c.InstructionsHTML)
	return nil
}

// ---------------------------------------------------------------------------
// storyboard
// ---------------------------------------------------------------------------

type StoryboardFrame struct {
	Caption string `json:"caption"`
	ImageRef
}

type StoryboardContent struct {
	Title            string            `json:"title"`
	Frames           []StoryboardFrame `json:"frames"`
	FrameCount       int               `json:"frameCount"`
	InstructionsHTML string            `json:"instructionsHtml"`
}

func (c *StoryboardContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if len(c.Frames) == 0 && c.FrameCount <= 0 {
		m.add("frames|frameCount")
	}
	return m.result()
}

// FrameList returns the authored frames, or FrameCount empty frames.
func (c *StoryboardContent) FrameList() []StoryboardFrame {
	if len(c.Frames) > 0 {
		return c.Frames
	}
	return make([]StoryboardFrame, max(c.FrameCount, 0))
}

func (c *StoryboardContent) ImageSlots() []*ImageRef {
	slots := make([]*ImageRef, len(c.Frames))
	for i := range c.Frames {
		slots[i] = &c.Frames[i].ImageRef
	}
	return slots
}

func (c *StoryboardContent) link(l Linker) error {
	linkHTML(l, &c.InstructionsHTML)
	for i := range c.Frames {
		c.Frames[i].ImageRef.link(l)
	}
	return nil
}

// ---------------------------------------------------------------------------
// audio-comprehension
// ---------------------------------------------------------------------------

type AudioComprehensionContent struct {
	Title          string   `json:"title"`
	AudioSrc       string   `json:"audioSrc"`
	Questions      []string `json:"questions"`
	TranscriptHTML string   `json:"transcriptHtml"`
}

func (c *AudioComprehensionContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.text("audioSrc", c.AudioSrc)
	return m.result()
}

func (c *AudioComprehensionContent) ImageSlots() []*ImageRef { return nil }

func (c *AudioComprehensionContent) QuestionList() []string { return nonBlank(c.Questions) }

func (c *AudioComprehensionContent) link(l Linker) error {
	if !blank(c.AudioSrc) {
		c.AudioSrc = l.Href(strings.TrimSpace(c.AudioSrc))
	}
	linkHTML(l, &c.TranscriptHTML)
	return nil
}

// ---------------------------------------------------------------------------
// reporting-prompt
// ---------------------------------------------------------------------------

type ReportingPromptContent struct {
	Title            string   `json:"title"`
	PromptHTML       string   `json:"promptHtml"`
	SentenceStarters []string `json:"sentenceStarters"`
}

func (c *ReportingPromptContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	m.text("promptHtml", c.PromptHTML)
	return m.result()
}

func (c *ReportingPromptContent) ImageSlots() []*ImageRef { return nil }

func (c *ReportingPromptContent) StarterList() []string { return nonBlank(c.SentenceStarters) }

func (c *ReportingPromptContent) link(l Linker) error {
	linkHTML(l, &c.PromptHTML)
	return nil
}

// ---------------------------------------------------------------------------
// feedback-columns
// ---------------------------------------------------------------------------

type FeedbackColumn struct {
	Heading string   `json:"heading"`
	Items   []string `json:"items"`
}

type FeedbackColumnsContent struct {
	Title   string           `json:"title"`
	Columns []FeedbackColumn `json:"columns"`
}

func (c *FeedbackColumnsContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if len(c.Columns) == 0 {
		m.add("columns")
	}
	for i, col := range c.Columns {
		m.text(fmt.Sprintf("columns[%d].heading", i), col.Heading)
	}
	return m.result()
}

func (c *FeedbackColumnsContent) ImageSlots() []*ImageRef { return nil }

func (c *FeedbackColumnsContent) link(Linker) error { return nil }

// ---------------------------------------------------------------------------
// three-column-reflection
// ---------------------------------------------------------------------------

type ReflectionColumn struct {
	Heading    string `json:"heading"`
	PromptHTML string `json:"promptHtml"`
}

type ThreeColumnReflectionContent struct {
	Title   string             `json:"title"`
	Columns []ReflectionColumn `json:"columns"`
}

func (c *ThreeColumnReflectionContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if len(c.Columns) != 3 {
		m.add(fmt.Sprintf("columns (exactly 3, got %d)", len(c.Columns)))
	}
	for i, col := range c.Columns {
		m.text(fmt.Sprintf("columns[%d].heading", i), col.Heading)
	}
	return m.result()
}

func (c *ThreeColumnReflectionContent) ImageSlots() []*ImageRef { return nil }

func (c *ThreeColumnReflectionContent) link(l Linker) error {
	for i := range c.Columns {
		linkHTML(l, &c.Columns[i].PromptHTML)
	}
	return nil
}

// ---------------------------------------------------------------------------
// image-matching
// ---------------------------------------------------------------------------

type MatchingImage struct {
	Label string `json:"label"`
	ImageRef
}

type ImageMatchingContent struct {
	Title string          `json:"title"`
	Items []MatchingImage `json:"items"`
}

func (c *ImageMatchingContent) Missing() []string {
	var m missing
	m.text("title", c.Title)
	if len(c.Items) == 0 {
		m.add("items")
	}
	for i, it := range c.Items {
		m.text(fmt.Sprintf("items[%d].label", i), it.Label)
	}
	return m.result()
}

func (c *ImageMatchingContent) ImageSlots() []*ImageRef {
	slots := make([]*ImageRef, len(c.Items))
	for i := range c.Items {
		slots[i] = &c.Items[i].ImageRef
	}
	return slots
}

// SortedLabels are the labels to match, sorted away from image order.
func (c *ImageMatchingContent) SortedLabels() []string {
	out := make([]string, len(c.Items))
	for i, it := range c.Items {
		out[i] = it.Label
	}
	slices.Sort(out)
	return out
}

func (c *ImageMatchingContent) link(l Linker) error {
	for i := range c.Items {
		c.Items[i].ImageRef.link(l)
	}
	return nil
}

// ---------------------------------------------------------------------------
// centered-text
// ---------------------------------------------------------------------------

type CenteredTextContent struct {
	Text     string `json:"text"`
	Subtitle string `json:"subtitle"`
}

func (c *CenteredTextContent) Missing() []string {
	var m missing
	m.text("text", c.Text)
	return m.result()
}

func (c *CenteredTextContent) ImageSlots() []*ImageRef { return nil }

func (c *CenteredTextContent) link(Linker) error { return nil }
