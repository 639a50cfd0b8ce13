package automod

import "testing"

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Hello", "hello"},
		{"h3ll0 w0rld", "helloworld"},
		{"s p a c e d", "spaced"},
		{"b4d-t3rm!", "badtermi"},
		{"1337", "ieet"},
		{"", ""},
	}
	for _, c := range cases {
		if got := Normalize(c.in); got != c.want {
			t.Fatalf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFilterCatchesObfuscatedTerms(t *testing.T) {
	f := New([]string{"badword", ""}, false)

	for _, msg := range []string{
		"badword",
		"BADWORD",
		"b a d w o r d",
		"b4dw0rd",
		"this contains a b.a.d.w.o.r.d somewhere",
	} {
		if reason, flagged := f.Check(msg); !flagged || reason != "badword" {
			t.Fatalf("Check(%q) = (%q, %v), want flagged", msg, reason, flagged)
		}
	}

	if _, flagged := f.Check("a perfectly fine message"); flagged {
		t.Fatalf("clean message flagged")
	}
}

func TestFilterInviteLinks(t *testing.T) {
	f := New(nil, true)

	if _, flagged := f.Check("join us at https://discord.gg/abc123"); !flagged {
		t.Fatalf("invite link not flagged")
	}
	if _, flagged := f.Check("https://DISCORD.COM/invite/xyz"); !flagged {
		t.Fatalf("invite link (long form) not flagged")
	}

	off := New(nil, false)
	if _, flagged := off.Check("https://discord.gg/abc123"); flagged {
		t.Fatalf("invite flagged with blocking off")
	}
}
