package config

const badFileName = "_bad_file_name_"

func nameOrDefault(name string) string {
	if name == "" {
		return badFileName
	}
	return name
}
