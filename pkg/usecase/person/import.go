package person

import (
	"context"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kith/pkg/model"
	"gopkg.in/yaml.v3"
)

// Import reads a YAML list of people and adds each of them. Every entry is
// validated before the first one is stored.
//
//	- name: John
//	  relation: friend
//	  tag: green
//	  description: met at school
func (u *UseCase) Import(ctx context.Context, r io.Reader) ([]*model.Person, error) {
	var inputs []model.PersonInput
	if err := yaml.NewDecoder(r).Decode(&inputs); err != nil {
		if err == io.EOF {
			return []*model.Person{}, nil
		}
		return nil, goerr.Wrap(err, "failed to parse people YAML")
	}

	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid entry", goerr.V("index", i), goerr.V("name", inputs[i].Name))
		}
	}

	added := make([]*model.Person, 0, len(inputs))
	for _, in := range inputs {
		p, err := u.Add(ctx, in)
		if err != nil {
			return added, goerr.Wrap(err, "import stopped", goerr.V("name", in.Name), goerr.V("added", len(added)))
		}
		added = append(added, p)
	}
	return added, nil
}
