package buildinfo

const Graffiti = " _____  _   _   _   ____ _____  __\n|  _  || | | | / \\ |  _ \\_ _\\ \\/ /\n| | | || | | |/ _ \\| | | | | \\  / \n| |_| || |_| / ___ \\ |_| | | /  \\ \n\\___\\_\\ \\___/_/   \\_\\____/___/_/\\_\\\n\n"

var (
	BuildTag string = "v0.0.0"
	Name     string = "QUADIX"
	Time     string = ""
)

type buildinfo struct{}

func (buildinfo) Tag() string {
	return BuildTag
}

func (buildinfo) Name() string {
	return Name
}

func (buildinfo) Time() string {
	return Time
}

var Info buildinfo
