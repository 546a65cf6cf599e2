package binding

import "testing"

func TestInterpolate(t *testing.T) {
	vals := Values{}
	vals.Set("subject.name", "Piyush Pandey")
	vals.Set("rows", 25)
	vals.Set("tags", []string{"bank", "jan"})

	cases := []struct {
		in, want string
	}{
		{"${subject.name}", "Piyush Pandey"},
		{"Report for ${ subject.name } (${rows} rows)", "Report for Piyush Pandey (25 rows)"},
		{"${tags[1]}", "jan"},
		{"${subject.email|n/a}", "n/a"},
		{"${subject.email}", "${subject.email}"},
		{"${tags[5]}", "${tags[5]}"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		if got := Interpolate(c.in, vals); got != c.want {
			t.Fatalf("Interpolate(%q) = %q，期望 %q", c.in, got, c.want)
		}
	}
}

func TestInterpolateNilData(t *testing.T) {
	if got := Interpolate("${a|x} ${b}", nil); got != "x ${b}" {
		t.Fatalf("nil 数据时应只使用默认值: %q", got)
	}
}

func TestSetOverwritesScalar(t *testing.T) {
	vals := Values{"subject": "flat"}
	vals.Set("subject.name", "Ada")
	if got := Interpolate("${subject.name}", vals); got != "Ada" {
		t.Fatalf("嵌套写入失败: %q", got)
	}
}

func TestPlaceholders(t *testing.T) {
	got := Placeholders("${a} and ${b.c|d}")
	if len(got) != 2 || got[0] != "a" || got[1] != "b.c" {
		t.Fatalf("占位符解析错误: %v", got)
	}
}
