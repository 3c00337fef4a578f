package nsfs

// Separator is the only path separator understood by the namespace
const Separator = "/"

// JoinPath appends name to the absolute directory path dir
func JoinPath(dir, name string) string {
	if dir == Separator {
		return Separator + name
	}
	return dir + Separator + name
}
