package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/shaderplay/shaderplay/internal/domain/compiler"
	"github.com/shaderplay/shaderplay/internal/domain/execution"
	"github.com/shaderplay/shaderplay/internal/domain/values"
)

// JUnitFormatter formats batch results as JUnit XML.
type JUnitFormatter struct {
	writer io.Writer
}

// NewJUnitFormatter creates a new JUnit formatter.
func NewJUnitFormatter(w io.Writer) *JUnitFormatter {
	return &JUnitFormatter{writer: w}
}

// JUnitTestSuites JUnit XML structures
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

type JUnitFailure struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitError struct {
	Message string `xml:"message,attr"`
	Content string `xml:",chardata"`
}

type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Format writes the batch result as JUnit XML. Each compiler becomes a test
// suite and each job a test case.
func (f *JUnitFormatter) Format(result *execution.BatchResult) error {
	var suites []JUnitTestSuite
	byCompiler := make(map[string]int)

	for _, job := range result.Jobs {
		idx, ok := byCompiler[job.Compiler]
		if !ok {
			idx = len(suites)
			byCompiler[job.Compiler] = idx
			suites = append(suites, JUnitTestSuite{Name: result.ManifestName + "." + job.Compiler})
		}
		suite := &suites[idx]

		c := JUnitTestCase{
			Name:      job.ID,
			ClassName: job.Source,
			Time:      job.Duration.Seconds(),
		}

		switch job.Status {
		case values.StatusFail:
			c.Failure = &JUnitFailure{
				Message: failureMessage(job),
				Content: validationText(job),
			}
			suite.Failures++
		case values.StatusError:
			c.Error = &JUnitError{
				Message: job.Message,
				Content: job.Message,
			}
			suite.Errors++
		case values.StatusSkipped:
			c.Skipped = &JUnitSkipped{Message: job.SkipReason}
			suite.Skipped++
		case values.StatusPass:
			if len(job.Diagnostics) > 0 {
				c.SystemOut = validationText(job)
			}
		}

		suite.Tests++
		suite.Time += c.Time
		suite.TestCases = append(suite.TestCases, c)
	}

	doc := JUnitTestSuites{
		Name:       "shaderplay " + result.ManifestName,
		Tests:      result.Summary.TotalJobs,
		Failures:   result.Summary.FailedJobs,
		Errors:     result.Summary.ErrorJobs,
		Time:       result.Duration.Seconds(),
		TestSuites: suites,
	}

	if _, err := f.writer.Write([]byte(xml.Header)); err != nil {
		return err
	}

	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return err
	}

	_, err := f.writer.Write([]byte("\n"))
	return err
}

func failureMessage(job execution.JobResult) string {
	if job.Message != "" {
		return job.Message
	}
	if job.ErrorCode != nil {
		return fmt.Sprintf("validation failed with error code %d", *job.ErrorCode)
	}
	return "validation failed"
}

func validationText(job execution.JobResult) string {
	for _, o := range job.Outputs {
		if o.Label == compiler.OutputValidation {
			return o.Text
		}
	}
	lines := make([]string, 0, len(job.Diagnostics))
	for _, d := range job.Diagnostics {
		lines = append(lines, formatDiagnostic(d))
	}
	return strings.Join(lines, "\n")
}

func formatDiagnostic(d compiler.Diagnostic) string {
	switch {
	case d.Line > 0 && d.Column > 0:
		return fmt.Sprintf("%s %d:%d: %s", d.Severity, d.Line, d.Column, d.Message)
	case d.Line > 0:
		return fmt.Sprintf("%s %d: %s", d.Severity, d.Line, d.Message)
	default:
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
}
