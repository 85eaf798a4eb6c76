package naming

import (
	"testing"

	"bindery/internal/aip"
)

func TestClassifyMediaOnly(t *testing.T) {
	cls := Classify([]string{"interview.mov", "interview.wav"})
	if cls.Type != aip.TypeMedia {
		t.Fatalf("type = %q, want media", cls.Type)
	}
	if cls.Mixed {
		t.Fatal("homogeneous listing flagged as mixed")
	}
}

func TestClassifyMetadataWins(t *testing.T) {
	cls := Classify([]string{"finding-aid.pdf", "inventory.xml"})
	if cls.Type != aip.TypeMetadata {
		t.Fatalf("type = %q, want metadata", cls.Type)
	}
	if cls.Mixed {
		t.Fatal("homogeneous listing flagged as mixed")
	}
}

func TestClassifyMixedContent(t *testing.T) {
	cls := Classify([]string{"interview.mov", "transcript.pdf"})
	if cls.Type != aip.TypeMetadata {
		t.Fatalf("type = %q, want metadata when any metadata document present", cls.Type)
	}
	if !cls.Mixed {
		t.Fatal("heterogeneous listing not flagged as mixed")
	}
}

func TestClassifyIgnoresExtensionlessEntries(t *testing.T) {
	cls := Classify([]string{"README", "interview.mp4"})
	if cls.Type != aip.TypeMedia {
		t.Fatalf("type = %q, want media", cls.Type)
	}
	if cls.Mixed {
		t.Fatal("extensionless entry should not count toward mixing")
	}
}
