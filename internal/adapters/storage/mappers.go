package storage

import "arbor/internal/domain"

// featureToDomain converts a FeatureModel plus its dependency edges to a
// domain.Feature
func featureToDomain(model FeatureModel, deps []FeatureDependencyModel) domain.Feature {
	feature := domain.Feature{
		Name:        model.Name,
		BranchName:  model.BranchName,
		Description: model.Description,
		Status:      model.Status,
		Position:    model.Position,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	for _, dep := range deps {
		if dep.FeatureName == model.Name {
			feature.DependsOn = append(feature.DependsOn, dep.DependsOn)
		}
	}
	return feature
}

// featureToModel converts a domain.Feature to its storage models
func featureToModel(feature domain.Feature) (FeatureModel, []FeatureDependencyModel) {
	model := FeatureModel{
		Name:        feature.Name,
		BranchName:  feature.BranchName,
		Description: feature.Description,
		Status:      feature.Status,
		Position:    feature.Position,
	}

	deps := make([]FeatureDependencyModel, 0, len(feature.DependsOn))
	for _, dep := range feature.DependsOn {
		deps = append(deps, FeatureDependencyModel{
			FeatureName: feature.Name,
			DependsOn:   dep,
		})
	}
	return model, deps
}
