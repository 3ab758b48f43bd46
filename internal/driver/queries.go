package driver

// IndexQueries run once per connection before the first export.
var IndexQueries = []string{
	"CREATE INDEX ON :KrsEntity(id);",
	"CREATE INDEX ON :KrsEntity(subject);",
}

const (
	// SaveNodesQuery upserts one batch of nodes. Attributes travel as a JSON
	// string because registry values are not all Bolt-encodable.
	SaveNodesQuery = `
		UNWIND $nodes AS row
		MERGE (n:KrsEntity {id: row.id})
		SET n.name = row.name,
			n.group = row.group,
			n.attributes = row.attributes,
			n.community = row.community,
			n.subject = $subject,
			n.run_id = $run_id
		RETURN count(n) AS saved
	`

	// SaveEdgesQuery upserts relations between nodes that already exist.
	SaveEdgesQuery = `
		UNWIND $edges AS row
		MATCH (source:KrsEntity {id: row.source})
		MATCH (target:KrsEntity {id: row.target})
		MERGE (source)-[e:KRS_RELATION {relation: row.relation}]->(target)
		SET e.run_id = $run_id
		RETURN count(e) AS saved
	`

	CountSubjectNodesQuery = `
		MATCH (n:KrsEntity {subject: $subject})
		RETURN count(n) AS count
	`
)
