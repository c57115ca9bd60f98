package artifact

// Name identifies one java_tools release artifact.
type Name string

// Known artifact names, in the order the release builder prints them.
const (
	JavaToolsLinux       Name = "java_tools_linux"
	JavaToolsWindows     Name = "java_tools_windows"
	JavaToolsDarwinX8664 Name = "java_tools_darwin_x86_64"
	JavaToolsDarwinArm64 Name = "java_tools_darwin_arm64"
	JavaTools            Name = "java_tools"
)

// Generic is the platform-independent artifact the release version is read from.
const Generic = JavaTools

// Names returns all known artifact names in positional order.
func Names() []Name {
	return []Name{
		JavaToolsLinux,
		JavaToolsWindows,
		JavaToolsDarwinX8664,
		JavaToolsDarwinArm64,
		JavaTools,
	}
}

// Known reports whether n is one of Names.
func (n Name) Known() bool {
	for _, known := range Names() {
		if n == known {
			return true
		}
	}

	return false
}

func (n Name) String() string {
	return string(n)
}
