package portfolio

// validDoc is a complete, valid company document used across tests.
const validDoc = `
company:
  id: acme
  label: Acme Corp
  role: Staff SRE
  period: 2021 - 2024
  people_scope:
    team_size: 6
projects:
  - id: prj-logs
    title: Central logging
    themes: [observability]
    problem:
      id: pb-logs
      statement: Logs were scattered across forty hosts.
    solution:
      id: sl-logs
      statement: Shipped every log stream into one pipeline. Added retention.
      tools: ["AWS", " terraform ", "AWS"]
    impact_ids: [im-mttr]
  - id: prj-scale
    title: Autoscaling rollout
    problem:
      id: pb-scale
      statement: Traffic spikes took the API down twice a month.
    solution:
      id: sl-scale
      statement: Introduced horizontal autoscaling on queue depth
    impact_ids: [im-mttr, im-cost]
    deepDive:
      enabled: true
      slug: prj-scale
impacts:
  - id: im-mttr
    label: Faster recovery
    type: reliability
    metrics: ["MTTR -40%"]
  - id: im-cost
    label: Lower spend
    type: scalability
edges:
  - {from: acme, to: prj-logs, rel: owns}
  - {from: prj-logs, to: pb-logs, rel: has_problem}
  - {from: prj-logs, to: sl-logs, rel: has_solution}
  - {from: sl-logs, to: im-mttr, rel: drives}
  - {from: acme, to: prj-scale, rel: owns}
`

// fakeIndex is a ContentIndex backed by a fixed slug set.
type fakeIndex map[string]bool

func (f fakeIndex) Exists(slug string) bool { return f[slug] }

func newDoc() *Portfolio {
	return &Portfolio{
		SourceFile: "acme.yaml",
		Company:    Company{ID: "acme", Label: "Acme", Role: "SRE", Period: "2020"},
		Projects: []Project{
			{
				ID: "prj-1", Title: "Project one",
				Problem:   Problem{ID: "pb-1", Statement: "Something was broken."},
				Solution:  Solution{ID: "sl-1", Statement: "Fixed the broken thing.", Tools: []string{"AWS"}},
				ImpactIDs: []string{"im-1"},
			},
			{
				ID: "prj-2", Title: "Project two",
				Problem:   Problem{ID: "pb-2", Statement: "Something else was slow."},
				Solution:  Solution{ID: "sl-2", Statement: "Made the slow thing fast."},
				ImpactIDs: []string{"im-1", "im-2"},
			},
		},
		Impacts: []Impact{
			{ID: "im-1", Label: "Uptime", Type: ImpactReliability},
			{ID: "im-2", Label: "Throughput", Type: ImpactScalability},
		},
		Edges: []Edge{
			{From: "acme", To: "prj-1", Rel: RelOwns},
			{From: "prj-1", To: "pb-1", Rel: RelHasProblem},
		},
	}
}
