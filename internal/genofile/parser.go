// Package genofile parses consumer genotype exports (23andMe, AncestryDNA)
// and simple VCF into the raw rsID -> genotype map the analysis core consumes.
package genofile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Format identifies the detected input layout.
type Format string

const (
	Format23andMe     Format = "23andme"
	FormatAncestryDNA Format = "ancestrydna"
	FormatVCF         Format = "vcf"
	FormatUnknown     Format = "unknown"
)

// ErrEmptyFile reports an input with no genotype rows at all.
var ErrEmptyFile = errors.New("no genotype records found")

// File is one parsed genotype export. Genotypes holds the raw calls exactly as
// read; normalization happens downstream.
type File struct {
	Format       Format
	TotalMarkers int
	Genotypes    map[string]string
}

// ParseFile opens and parses a genotype export from disk.
func ParseFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parsed, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parsed, nil
}

// Parse reads a genotype export. The format is detected from the data itself:
// VCF by its ##fileformat preamble, AncestryDNA by split allele columns,
// 23andMe by a combined genotype column.
func Parse(r io.Reader) (*File, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	out := &File{Format: FormatUnknown, Genotypes: make(map[string]string)}
	var vcfSampleCol = -1

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "##") {
			if strings.HasPrefix(line, "##fileformat=VCF") {
				out.Format = FormatVCF
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			// VCF column header carries the sample column position
			if out.Format == FormatVCF && strings.HasPrefix(line, "#CHROM") {
				cols := strings.Split(line, "\t")
				if len(cols) >= 10 {
					vcfSampleCol = 9
				}
			}
			continue
		}

		if out.Format == FormatVCF {
			parseVCFLine(line, vcfSampleCol, out)
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 4 {
			continue
		}
		// header rows in vendor exports are not always commented
		if strings.EqualFold(fields[0], "rsid") {
			if len(fields) >= 5 && strings.EqualFold(fields[3], "allele1") {
				out.Format = FormatAncestryDNA
			} else if out.Format == FormatUnknown {
				out.Format = Format23andMe
			}
			continue
		}

		switch {
		case len(fields) >= 5 && out.Format == FormatAncestryDNA:
			out.Genotypes[fields[0]] = fields[3] + fields[4]
		case len(fields) >= 5 && out.Format == FormatUnknown && looksLikeAllele(fields[3]) && looksLikeAllele(fields[4]):
			out.Format = FormatAncestryDNA
			out.Genotypes[fields[0]] = fields[3] + fields[4]
		default:
			if out.Format == FormatUnknown {
				out.Format = Format23andMe
			}
			out.Genotypes[fields[0]] = fields[3]
		}
		out.TotalMarkers++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(out.Genotypes) == 0 {
		return nil, ErrEmptyFile
	}
	if out.TotalMarkers == 0 {
		out.TotalMarkers = len(out.Genotypes)
	}
	return out, nil
}

// looksLikeAllele matches single-character allele columns including the
// vendor no-call and indel codes.
func looksLikeAllele(s string) bool {
	if len(s) != 1 {
		return false
	}
	switch s[0] {
	case 'A', 'C', 'G', 'T', 'I', 'D', '0', '-':
		return true
	}
	return false
}

// parseVCFLine extracts the GT field of the first sample and rewrites it as a
// two-letter genotype using REF/ALT alleles. Multi-allelic rows and non-SNV
// alleles are skipped.
func parseVCFLine(line string, sampleCol int, out *File) {
	fields := strings.Split(line, "\t")
	if sampleCol < 0 || len(fields) <= sampleCol {
		return
	}

	rsid, ref, alt := fields[2], fields[3], fields[4]
	if rsid == "." || !strings.HasPrefix(rsid, "rs") {
		return
	}
	if len(ref) != 1 || len(alt) != 1 {
		return
	}

	gt := fields[sampleCol]
	if idx := strings.Index(gt, ":"); idx >= 0 {
		gt = gt[:idx]
	}
	gt = strings.ReplaceAll(gt, "|", "/")
	parts := strings.Split(gt, "/")
	if len(parts) != 2 {
		return
	}

	alleles := make([]byte, 0, 2)
	for _, p := range parts {
		switch p {
		case "0":
			alleles = append(alleles, ref[0])
		case "1":
			alleles = append(alleles, alt[0])
		case ".":
			alleles = append(alleles, '-')
		default:
			return
		}
	}

	out.Genotypes[rsid] = string(alleles)
	out.TotalMarkers++
}
