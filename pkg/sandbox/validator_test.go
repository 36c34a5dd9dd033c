package sandbox

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		code string
		want bool
	}{
		{
			name: "plain print passes",
			code: "print('hello world')",
			want: true,
		},
		{
			name: "loops and math pass",
			code: "total = 0\nfor i in range(10):\n    total += i\nprint(total)",
			want: true,
		},
		{
			name: "import os rejected",
			code: "import os\nprint(os.getcwd())",
			want: false,
		},
		{
			name: "import in comma list rejected",
			code: "import math, subprocess",
			want: false,
		},
		{
			name: "from sys import rejected",
			code: "from sys import argv",
			want: false,
		},
		{
			name: "dotted import rejected by root module",
			code: "import os.path",
			want: false,
		},
		{
			name: "eval call rejected",
			code: "eval('1+1')",
			want: false,
		},
		{
			name: "open call rejected",
			code: "f = open('data.txt')",
			want: false,
		},
		{
			name: "dunder import rejected",
			code: "__import__('os')",
			want: false,
		},
		{
			name: "system method rejected",
			code: "x.system('ls')",
			want: false,
		},
		{
			name: "connect method rejected",
			code: "sock.connect(('evil', 80))",
			want: false,
		},
		{
			name: "path probe rejected",
			code: "print('/etc/passwd')",
			want: false,
		},
		{
			name: "env file probe rejected",
			code: "print('.env')",
			want: false,
		},
		{
			name: "identifier containing banned name passes",
			code: "evaluate = 1\nprint(evaluate)",
			want: true,
		},
		{
			name: "allowed import passes",
			code: "import math\nprint(math.sqrt(4))",
			want: true,
		},
		{
			name: "sorted and remove on list rejected",
			code: "xs = [1, 2]\nxs.remove(1)",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.code); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}
