package vision

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// namesFile формат файла классов как в data.yaml ultralytics:
// names задаётся списком или отображением индекс -> имя.
type namesFile struct {
	Names yaml.Node `yaml:"names"`
}

// LoadClassNames читает метки классов модели из YAML-файла.
func LoadClassNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read class names %s", path)
	}
	names, err := ParseClassNames(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse class names %s", path)
	}
	return names, nil
}

// ParseClassNames разбирает содержимое YAML-файла классов.
func ParseClassNames(data []byte) ([]string, error) {
	var f namesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	switch f.Names.Kind {
	case yaml.SequenceNode:
		var list []string
		if err := f.Names.Decode(&list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, errors.New("no class names")
		}
		return list, nil

	case yaml.MappingNode:
		var byIndex map[int]string
		if err := f.Names.Decode(&byIndex); err != nil {
			return nil, err
		}
		if len(byIndex) == 0 {
			return nil, errors.New("no class names")
		}
		maxIdx := -1
		for idx := range byIndex {
			if idx < 0 {
				return nil, errors.Errorf("negative class index %d", idx)
			}
			if idx > maxIdx {
				maxIdx = idx
			}
		}
		list := make([]string, maxIdx+1)
		for idx, name := range byIndex {
			list[idx] = name
		}
		return list, nil

	case 0:
		return nil, errors.New(`missing "names" key`)

	default:
		return nil, errors.New(`"names" must be a list or a mapping`)
	}
}

// classNames метки классов модели по индексу
type classNames []string

// LabelFor возвращает метку класса, для неизвестного индекса class_<N>.
func (c classNames) LabelFor(classID int) string {
	if classID < 0 || classID >= len(c) || c[classID] == "" {
		return fmt.Sprintf("class_%d", classID)
	}
	return c[classID]
}

// Classes возвращает копию списка меток.
func (c classNames) Classes() []string {
	out := make([]string, len(c))
	copy(out, c)
	return out
}
