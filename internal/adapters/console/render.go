package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
)

const (
	barSlots       = 10
	excerptRunes   = 80
	fieldNameWidth = 18
)

func renderHeader(w io.Writer, snap domain.StatusSnapshot, doc domain.DocumentState) {
	indicator := color.RedString("●") + " offline"
	if snap.Online {
		indicator = color.GreenString("●") + " online"
	}
	docPart := color.HiBlackString("no document")
	if doc.Loaded {
		docPart = "document: " + color.CyanString(doc.Name)
	}
	fmt.Fprintf(w, "%s · %s\n", indicator, docPart)
}

func renderStatus(w io.Writer, snap domain.StatusSnapshot) {
	if !snap.Online {
		fmt.Fprintln(w, color.RedString("backend unreachable"))
		return
	}
	fmt.Fprintln(w, color.GreenString("backend online"))
	if snap.DocumentLoaded {
		fmt.Fprintf(w, "backend reports document: %s\n", snap.DocumentName)
	} else {
		fmt.Fprintln(w, "backend reports no document loaded")
	}
}

func renderUploadResult(w io.Writer, result *domain.UploadResult, info domain.FileInfo) {
	if result == nil {
		return
	}
	fmt.Fprintf(w, "%s chunks · %s characters\n",
		formatGrouped(result.ChunksCreated), formatGrouped(result.TotalCharacters))
	if info.SizeBytes > 0 {
		line := "local file: " + formatBytes(info.SizeBytes)
		if info.Pages > 0 {
			line += fmt.Sprintf(" · %d pages", info.Pages)
		}
		fmt.Fprintln(w, color.HiBlackString(line))
	}
}

func renderAnswer(w io.Writer, answer *domain.Answer, expanded int) {
	if answer == nil {
		return
	}
	fmt.Fprintf(w, "Answer: %s\n", answer.Text)
	pct := domain.ConfidencePercent(answer.Confidence)
	tier := domain.TierFor(answer.Confidence)
	fmt.Fprintf(w, "Confidence: %s %d%% (%s)\n", confidenceBar(pct), pct, tierColor(tier))
	if domain.LowConfidence(answer.Confidence) {
		fmt.Fprintln(w, color.YellowString("(!) Low confidence — verify against the source document."))
	}
	if answer.Guardrail != "" && answer.Guardrail != "passed" {
		fmt.Fprintf(w, "%s\n", color.HiBlackString("guardrail: %s", answer.Guardrail))
	}
	renderSources(w, answer.Sources, expanded)
}

func renderSources(w io.Writer, sources []domain.Source, expanded int) {
	if len(sources) == 0 {
		return
	}
	fmt.Fprintln(w, "Sources:")
	for i, src := range sources {
		if i == expanded {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, src.Text)
			detail := make([]string, 0, 2)
			if src.Page != nil {
				detail = append(detail, fmt.Sprintf("page %d", *src.Page))
			}
			if src.ChunkID != "" {
				detail = append(detail, "chunk "+src.ChunkID)
			}
			if len(detail) > 0 {
				fmt.Fprintf(w, "      %s\n", color.HiBlackString(strings.Join(detail, " · ")))
			}
			continue
		}
		fmt.Fprintf(w, "  [%d] %s\n", i+1, excerpt(src.Text))
	}
}

func renderExtraction(w io.Writer, result *domain.ExtractionResult) {
	if result == nil {
		return
	}
	if len(result.Fields) == 0 {
		fmt.Fprintln(w, "no fields extracted")
		return
	}
	for _, field := range result.Fields {
		name := fmt.Sprintf("%-*s", fieldNameWidth, field.DisplayName())
		value := field.DisplayValue()
		if field.Value == nil || *field.Value == "" {
			value = color.HiBlackString(value)
		}
		fmt.Fprintf(w, "%s %s\n", name, value)
	}
}

func renderHelp(w io.Writer) {
	fmt.Fprint(w, `Commands:
  status            check backend health now
  upload <path>     upload a .pdf, .docx or .txt document
  ask <question>    ask a question about the loaded document
  source <i>        expand or collapse source i of the last answer
  extract           pull structured shipment fields
  export [path]     save the last extraction to an .xlsx file
  about             show backend service info
  help              show this help
  quit              exit
`)
}

func tierColor(tier domain.ConfidenceTier) string {
	switch tier {
	case domain.TierHigh:
		return color.GreenString(string(tier))
	case domain.TierMedium:
		return color.YellowString(string(tier))
	default:
		return color.RedString(string(tier))
	}
}

func confidenceBar(pct int) string {
	filled := pct * barSlots / 100
	if filled > barSlots {
		filled = barSlots
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barSlots-filled) + "]"
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptRunes {
		return text
	}
	return string(runes[:excerptRunes]) + "…"
}

// formatGrouped renders an integer with thousands separators, e.g. 5400
// becomes "5,400".
func formatGrouped(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatGrouped(-n)
	}
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGT"[exp])
}
