package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sentenceTexts(sentences []Sentence) []string {
	texts := make([]string, 0, len(sentences))
	for _, s := range sentences {
		texts = append(texts, s.Text)
	}
	return texts
}

func TestSegmenter_Split(t *testing.T) {
	seg := NewSegmenter()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "empty",
			text: "",
			want: []string{},
		},
		{
			name: "whitespace only",
			text: "   \n\t  ",
			want: []string{},
		},
		{
			name: "single without terminator",
			text: "The tenant shall pay rent",
			want: []string{"The tenant shall pay rent"},
		},
		{
			name: "two sentences",
			text: "The tenant must pay rent by the 5th. The landlord may enter with notice.",
			want: []string{"The tenant must pay rent by the 5th.", "The landlord may enter with notice."},
		},
		{
			name: "question and exclamation",
			text: "Can the buyer cancel? Yes! The seller agrees.",
			want: []string{"Can the buyer cancel?", "Yes!", "The seller agrees."},
		},
		{
			name: "title abbreviation",
			text: "Mr. Smith shall deliver the goods. Dr. Jones may inspect them.",
			want: []string{"Mr. Smith shall deliver the goods.", "Dr. Jones may inspect them."},
		},
		{
			name: "company abbreviation",
			text: "Acme Inc. Shall indemnify the buyer.",
			want: []string{"Acme Inc. Shall indemnify the buyer."},
		},
		{
			name: "dotted abbreviation",
			text: "Fees, e.g. late charges, apply. Goods made in the U.S. Are exempt.",
			want: []string{"Fees, e.g. late charges, apply.", "Goods made in the U.S. Are exempt."},
		},
		{
			name: "initial",
			text: "J. Smith signed the lease. It ends in May.",
			want: []string{"J. Smith signed the lease.", "It ends in May."},
		},
		{
			name: "numbered reference",
			text: "See Sec. 12 for details. No. The buyer refused.",
			want: []string{"See Sec. 12 for details.", "No.", "The buyer refused."},
		},
		{
			name: "decimal number",
			text: "The fee is $5.00 per month. It is due monthly.",
			want: []string{"The fee is $5.00 per month.", "It is due monthly."},
		},
		{
			name: "lowercase continuation",
			text: "Payment is due at 5 p.m. on Fridays.",
			want: []string{"Payment is due at 5 p.m. on Fridays."},
		},
		{
			name: "closing quote",
			text: `The clause reads "the seller must pay." The buyer agreed.`,
			want: []string{`The clause reads "the seller must pay."`, "The buyer agreed."},
		},
		{
			name: "paragraph break",
			text: "Section 1 Rent\n\nThe tenant must pay rent",
			want: []string{"Section 1 Rent", "The tenant must pay rent"},
		},
		{
			name: "single newline joins",
			text: "The tenant must\npay rent monthly.",
			want: []string{"The tenant must\npay rent monthly."},
		},
		{
			name: "lowercase after ordinary word",
			text: "The seller provides a warranty. the buyer must pay on delivery.",
			want: []string{"The seller provides a warranty.", "the buyer must pay on delivery."},
		},
		{
			name: "lowercase after numbered abbreviation",
			text: "See art. the next clause applies.",
			want: []string{"See art.", "the next clause applies."},
		},
		{
			name: "etc mid sentence",
			text: "Fees, costs, etc. are due on signing.",
			want: []string{"Fees, costs, etc. are due on signing."},
		},
		{
			name: "etc ends sentence",
			text: "Fees, costs, etc. The buyer pays them.",
			want: []string{"Fees, costs, etc.", "The buyer pays them."},
		},
		{
			name: "ellipsis",
			text: "The deposit... The rent is due.",
			want: []string{"The deposit...", "The rent is due."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sentenceTexts(seg.Split(tt.text))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Split(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestSegmenter_IndexAndOffset(t *testing.T) {
	seg := NewSegmenter()
	text := "  First one.   Second one.\n\n  Third"

	sentences := seg.Split(text)
	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d", len(sentences))
	}

	for i, s := range sentences {
		if s.Index != i {
			t.Errorf("Sentence %d has index %d", i, s.Index)
		}
		if text[s.Offset:s.Offset+len(s.Text)] != s.Text {
			t.Errorf("Offset %d does not locate %q", s.Offset, s.Text)
		}
	}
}
